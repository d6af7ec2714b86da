package rewind

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
)

// typeTracker is the type-erased view the rewind system drives
type typeTracker interface {
	step(w *engine.World, frame int64, log *zap.Logger)
}

// Tracker records and rewinds one component type
//
// Change detection compares the live component against the last
// recorded snapshot, so tracked types must be comparable
type Tracker[T comparable] struct {
	store       *engine.Store[T]
	rewinds     *engine.Store[component.RewindComponent]
	policies    *engine.Store[component.OutOfHistoryComponent]
	histories   map[core.Entity]*History[T]
	initialized map[core.Entity]struct{} // rewinds already primed for this type
}

// NewTracker builds a tracker for component type T
func NewTracker[T comparable](w *engine.World) *Tracker[T] {
	return &Tracker[T]{
		store:       engine.GetStore[T](w),
		rewinds:     engine.GetStore[component.RewindComponent](w),
		policies:    engine.GetStore[component.OutOfHistoryComponent](w),
		histories:   make(map[core.Entity]*History[T]),
		initialized: make(map[core.Entity]struct{}),
	}
}

// HistoryOf exposes an entity's history for inspection
func (tr *Tracker[T]) HistoryOf(e core.Entity) (*History[T], bool) {
	h, ok := tr.histories[e]
	return h, ok
}

// step runs one frame of the history chain:
// add new histories, retire, save, initialize rewinds, rewind, clear unused
func (tr *Tracker[T]) step(w *engine.World, frame int64, log *zap.Logger) {
	tr.addNewHistories()
	tr.retireFrames()
	tr.saveFrames(frame)
	tr.initializeRewinds()
	tr.runRewinds(w, frame, log)
	tr.clearUnusedHistories(w)
}

// addNewHistories creates histories for entities that gained T
func (tr *Tracker[T]) addNewHistories() {
	for _, e := range tr.store.All() {
		if _, ok := tr.histories[e]; !ok {
			tr.histories[e] = NewHistory[T]()
		}
	}
}

// retireFrames forgets the oldest frame of each full history
func (tr *Tracker[T]) retireFrames() {
	for _, h := range tr.histories {
		h.Retire()
	}
}

// saveFrames snapshots the state of T for all tracked entities
// Entities being rewound are not included in history
func (tr *Tracker[T]) saveFrames(frame int64) {
	for e, h := range tr.histories {
		if tr.rewinds.Has(e) {
			continue
		}

		value, exists := tr.store.Get(e)
		changed := false
		if exists {
			if len(h.Frames) == 0 {
				changed = true
			} else if prev := h.Frames[len(h.Frames)-1]; !prev.Existent {
				// re-added after a gap counts as a new state
				changed = true
			} else {
				changed = h.Components[len(h.Components)-1] != value
			}
		} else if len(h.Frames) == 0 {
			// histories only appear for entities holding T, so the first
			// recorded frame always exists
			continue
		}

		h.Save(value, exists, changed, frame)
	}
}

// initializeRewinds drops the newest stored snapshot when a rewind
// begins, since that state is already live on the entity
func (tr *Tracker[T]) initializeRewinds() {
	// forget entities whose rewind ended outside this tracker so a
	// future Rewind primes again
	for e := range tr.initialized {
		if !tr.rewinds.Has(e) {
			delete(tr.initialized, e)
		}
	}

	for _, e := range tr.rewinds.All() {
		if _, done := tr.initialized[e]; done {
			continue
		}
		tr.initialized[e] = struct{}{}

		h, ok := tr.histories[e]
		if !ok {
			continue
		}
		if len(h.Frames) > 0 && h.Frames[len(h.Frames)-1].Existent {
			h.PopComponent()
		}
	}
}

// runRewinds plays history backwards for every rewinding entity
func (tr *Tracker[T]) runRewinds(w *engine.World, frame int64, log *zap.Logger) {
	for _, e := range tr.rewinds.All() {
		r, ok := tr.rewinds.Get(e)
		if !ok {
			continue
		}
		h, ok := tr.histories[e]
		if !ok {
			continue
		}

		policy := component.OutOfHistoryResume
		if p, ok := tr.policies.Get(e); ok {
			policy = p.Policy
		}

		despawned := false
		for i := uint32(0); i < r.FPS; i++ {
			ts, ok := h.PopBack()
			if !ok {
				// the frame deque is empty; normal for a young entity,
				// a problem if history leaked and data was lost
				if h.State == StorageLeaking {
					log.Warn("history ran out of frames",
						zap.Uint64("entity", uint64(e)))
				}

				switch policy {
				case component.OutOfHistoryPause:
				case component.OutOfHistoryResume:
					tr.rewinds.Remove(e)
					delete(tr.initialized, e)
				case component.OutOfHistoryDespawn:
					Despawn(w, e)
					despawned = true
				}
				continue
			}

			switch {
			case ts.Existent && ts.Frame != h.RenderedFrame:
				// component was mutated or deleted in the later frame; restore it
				c, ok := h.PopComponent()
				if !ok {
					panic("rewind: no past components in frame queue")
				}
				tr.store.Add(e, c)
				h.RenderedFrame = ts.Frame
			case !ts.Existent && ts.Frame != h.RenderedFrame:
				// component was created in the later frame; delete it
				tr.store.Remove(e)
				h.RenderedFrame = ts.Frame
			}
		}

		// finished
		if r.Frames == 0 {
			if !despawned {
				tr.rewinds.Remove(e)
			}
			delete(tr.initialized, e)

			// return the live component to storage; either the one removed
			// during initialization or a new one it rewound to
			if !despawned {
				if t, ok := tr.store.Get(e); ok {
					h.Components = append(h.Components, t)
					// at least one frame must exist to accompany it
					if len(h.Frames) == 0 {
						h.Frames = append(h.Frames, Timestamp{Frame: frame, Existent: true})
						h.RenderedFrame = frame
					}
				}
			}
		}
	}
}

// clearUnusedHistories drops histories with no useful data left:
// the entity is gone, or it holds neither a live component nor snapshots
func (tr *Tracker[T]) clearUnusedHistories(w *engine.World) {
	for e, h := range tr.histories {
		if w.IsAlive(e) && (len(h.Components) > 0 || tr.store.Has(e)) {
			continue
		}
		delete(tr.histories, e)
		delete(tr.initialized, e)
	}
}
