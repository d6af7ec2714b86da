package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/bt"
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
)

// ActFunc executes one leaf action for an agent
// An action must call bt.Brain.WriteVerdict through the brain store
// before the think phase runs, or the agent's tree is terminated
type ActFunc func(world *engine.World, e core.Entity)

// BehaviorSystem drives every agent's behavior tree to quiescence
//
// Each frame all brains are activated, then act and think phases
// alternate until no agent has work left: leaves that settle
// (success/failure) advance through the tree within the same frame,
// leaves that yield (running) park their agent until next frame
type BehaviorSystem struct {
	world *engine.World
	log   *zap.Logger

	brains  *engine.Store[bt.Brain]
	trees   *engine.Store[component.TreeRefComponent]
	actions *engine.Store[component.ActionComponent]
	active  *engine.Store[component.ActiveTreeComponent]
	dead    *engine.Store[component.DeadComponent]
	rewinds *engine.Store[component.RewindComponent]

	handlers map[component.ActionKind]ActFunc
}

// NewBehaviorSystem creates the behavior driver
func NewBehaviorSystem(world *engine.World, log *zap.Logger) *BehaviorSystem {
	return &BehaviorSystem{
		world:    world,
		log:      log.Named("behavior"),
		brains:   engine.GetStore[bt.Brain](world),
		trees:    engine.GetStore[component.TreeRefComponent](world),
		actions:  engine.GetStore[component.ActionComponent](world),
		active:   engine.GetStore[component.ActiveTreeComponent](world),
		dead:     engine.GetStore[component.DeadComponent](world),
		rewinds:  engine.GetStore[component.RewindComponent](world),
		handlers: make(map[component.ActionKind]ActFunc),
	}
}

// Register binds a leaf action to its handler
func (s *BehaviorSystem) Register(kind component.ActionKind, fn ActFunc) {
	s.handlers[kind] = fn
}

// Priority returns the system's priority
func (s *BehaviorSystem) Priority() int {
	return parameter.PriorityBehavior
}

// Update runs the act/think loop until all agents settle
func (s *BehaviorSystem) Update(world *engine.World, dt time.Duration) {
	// activate all live brains; dead or rewinding agents don't think
	for _, e := range s.brains.All() {
		if s.dead.Has(e) || s.rewinds.Has(e) {
			continue
		}
		s.active.Add(e, component.ActiveTreeComponent{})
	}

	for iter := 0; s.active.Count() > 0; iter++ {
		if iter >= parameter.BehaviorIterationLimit {
			s.log.Warn("behavior loop did not settle, deactivating remaining agents",
				zap.Int("remaining", s.active.Count()))
			for _, e := range s.active.All() {
				s.active.Remove(e)
			}
			break
		}

		// act phase: execute the current leaf of every active agent
		for _, e := range s.active.All() {
			a, _ := s.actions.Get(e)
			if fn := s.handlers[a.Kind]; fn != nil {
				fn(world, e)
			}
		}

		// think phase: consume verdicts and walk the tree
		for _, e := range s.active.All() {
			s.think(e)
		}
	}
}

// think advances one agent's tree from the last written verdict
func (s *BehaviorSystem) think(e core.Entity) {
	brain, ok := s.brains.Get(e)
	if !ok {
		s.active.Remove(e)
		return
	}
	ref, ok := s.trees.Get(e)
	if !ok || ref.Tree == nil {
		s.active.Remove(e)
		return
	}

	// fresh start from the root
	if brain.VisitingNode == 0 {
		out := ref.Tree.RunRoot()
		if out.Kind == bt.OutputComplete {
			// a tree without a reachable leaf never does work
			s.log.Error("behavior tree finished without producing a task",
				zap.Uint64("entity", uint64(e)))
			s.active.Remove(e)
			return
		}
		brain.VisitingNode = out.Node
		s.brains.Add(e, brain)
		s.actions.Add(e, component.ActionComponent{Kind: out.Action, Node: out.Node})
		return
	}

	// a leaf that never writes its verdict breaks the act contract;
	// the agent's tree is torn down rather than left spinning
	if !brain.PopChanged() {
		a, _ := s.actions.Get(e)
		s.log.Warn("leaf action was not handled, terminating tree",
			zap.Uint64("entity", uint64(e)),
			zap.Int("node", brain.VisitingNode),
			zap.Int("action", int(a.Kind)))
		s.active.Remove(e)
		s.brains.Remove(e)
		s.actions.Remove(e)
		s.trees.Remove(e)
		return
	}

	verdict, settled := brain.Verdict.Out()
	if !settled {
		// running: yield until next frame, same node
		s.brains.Add(e, brain)
		s.active.Remove(e)
		return
	}

	out := ref.Tree.RunLeaf(brain.VisitingNode, verdict)
	switch out.Kind {
	case bt.OutputTask:
		brain.VisitingNode = out.Node
		s.brains.Add(e, brain)
		s.actions.Add(e, component.ActionComponent{Kind: out.Action, Node: out.Node})
	case bt.OutputComplete:
		// tree finished; restart from the root next frame
		brain.VisitingNode = 0
		s.brains.Add(e, brain)
		s.actions.Add(e, component.ActionComponent{Kind: component.ActionEmpty})
		s.active.Remove(e)
	}
}

// WriteVerdict records a leaf result on an agent's brain
// Leaf action handlers call this exactly once per act invocation
func WriteVerdict(brains *engine.Store[bt.Brain], e core.Entity, v bt.Verdict) {
	if b, ok := brains.Get(e); ok {
		b.WriteVerdict(v)
		brains.Add(e, b)
	}
}
