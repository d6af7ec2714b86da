package rewind

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
)

// FrameResource counts how many simulation frames have run
type FrameResource struct {
	Index int64
}

// System drives component history for all registered trackers
//
// Per frame: propagate rewinds down the time hierarchy, consume rewind
// frame budgets, then run each tracker's history chain. The frame index
// increments afterwards in FrameIndexSystem
type System struct {
	world    *engine.World
	log      *zap.Logger
	frame    *FrameResource
	rewinds  *engine.Store[component.RewindComponent]
	children *engine.Store[component.TimeChildrenComponent]

	trackers   []typeTracker
	propagated map[core.Entity]struct{} // rewinds already pushed to descendants
}

// NewSystem creates the rewind system
// The FrameResource must already be registered on the world
func NewSystem(world *engine.World, log *zap.Logger) *System {
	return &System{
		world:      world,
		log:        log.Named("rewind"),
		frame:      engine.MustGetResource[*FrameResource](world.Resources),
		rewinds:    engine.GetStore[component.RewindComponent](world),
		children:   engine.GetStore[component.TimeChildrenComponent](world),
		propagated: make(map[core.Entity]struct{}),
	}
}

// Track registers component type T for history recording and rewinding
func Track[T comparable](s *System) *Tracker[T] {
	tr := NewTracker[T](s.world)
	s.trackers = append(s.trackers, tr)
	return tr
}

// Priority returns the system's priority
func (s *System) Priority() int {
	return parameter.PriorityRewind
}

// EventTypes returns event types handled
func (s *System) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventRewindRequest,
	}
}

// HandleEvent starts a rewind on the requested entity
func (s *System) HandleEvent(world *engine.World, ev event.GameEvent) {
	if ev.Type != event.EventRewindRequest {
		return
	}
	payload, ok := ev.Payload.(*event.RewindRequestPayload)
	if !ok {
		return
	}

	fps := payload.FPS
	if fps == 0 {
		fps = parameter.DefaultRewindFPS
	}
	s.rewinds.Add(payload.Entity, component.RewindComponent{
		Frames: payload.Frames,
		FPS:    fps,
	})
}

// Update runs one frame of history recording and playback
func (s *System) Update(world *engine.World, dt time.Duration) {
	s.propagateRewinds()
	s.updateRewindFrames()

	for _, tr := range s.trackers {
		tr.step(world, s.frame.Index, s.log)
	}
}

// propagateRewinds copies newly added rewinds to all time descendants
func (s *System) propagateRewinds() {
	for e := range s.propagated {
		if !s.rewinds.Has(e) {
			delete(s.propagated, e)
		}
	}

	for _, e := range s.rewinds.All() {
		if _, done := s.propagated[e]; done {
			continue
		}
		s.propagated[e] = struct{}{}

		r, ok := s.rewinds.Get(e)
		if !ok {
			continue
		}
		if ch, ok := s.children.Get(e); ok {
			for child := range ch.Children {
				s.propagateRewindToChild(r, child)
			}
		}
	}
}

func (s *System) propagateRewindToChild(r component.RewindComponent, e core.Entity) {
	s.rewinds.Add(e, r)
	s.propagated[e] = struct{}{}

	if ch, ok := s.children.Get(e); ok {
		for child := range ch.Children {
			s.propagateRewindToChild(r, child)
		}
	}
}

// updateRewindFrames consumes each rewind's frame budget for this tick
// FPS becomes the number of frames to play now; Frames what remains after
func (s *System) updateRewindFrames() {
	for _, e := range s.rewinds.All() {
		r, ok := s.rewinds.Get(e)
		if !ok {
			continue
		}
		if r.FPS > r.Frames {
			r.FPS = r.Frames
		}
		r.Frames -= r.FPS
		s.rewinds.Add(e, r)
	}
}

// FrameIndexSystem increments the frame counter after histories ran
type FrameIndexSystem struct {
	frame *FrameResource
}

// NewFrameIndexSystem creates the frame counter system
func NewFrameIndexSystem(world *engine.World) *FrameIndexSystem {
	return &FrameIndexSystem{
		frame: engine.MustGetResource[*FrameResource](world.Resources),
	}
}

func (s *FrameIndexSystem) Priority() int {
	return parameter.PriorityFrameIndex
}

func (s *FrameIndexSystem) Update(world *engine.World, dt time.Duration) {
	s.frame.Index++
}

// SetTimeParent links child into parent's time hierarchy
// Rewinds applied to the parent then propagate to the child
func SetTimeParent(w *engine.World, child, parent core.Entity) {
	children := engine.GetStore[component.TimeChildrenComponent](w)
	ch, ok := children.Get(parent)
	if !ok || ch.Children == nil {
		ch = component.TimeChildrenComponent{Children: make(map[core.Entity]struct{})}
	}
	ch.Children[child] = struct{}{}
	children.Add(parent, ch)

	engine.GetStore[component.TimeParentComponent](w).Add(child, component.TimeParentComponent{Parent: parent})
}

// Despawn destroys an entity and resolves the time hierarchy
// Prefer this over World.DestroyEntity for time-linked entities
func Despawn(w *engine.World, e core.Entity) {
	parents := engine.GetStore[component.TimeParentComponent](w)
	if p, ok := parents.Get(e); ok {
		children := engine.GetStore[component.TimeChildrenComponent](w)
		if ch, ok := children.Get(p.Parent); ok {
			delete(ch.Children, e)
			children.Add(p.Parent, ch)
		}
	}
	w.DestroyEntity(e)
}
