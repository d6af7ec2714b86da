package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
)

// DeathSystem marks drained health pools as dead
//
// Death is edge-triggered: the died event fires once, the body stays in
// the world carrying its components so history playback can resurrect it
type DeathSystem struct {
	world *engine.World
	log   *zap.Logger

	health  *engine.Store[component.HealthComponent]
	dead    *engine.Store[component.DeadComponent]
	active  *engine.Store[component.ActiveTreeComponent]
	actions *engine.Store[component.ActionComponent]
}

// NewDeathSystem creates the death system
func NewDeathSystem(world *engine.World, log *zap.Logger) *DeathSystem {
	return &DeathSystem{
		world:   world,
		log:     log.Named("death"),
		health:  engine.GetStore[component.HealthComponent](world),
		dead:    engine.GetStore[component.DeadComponent](world),
		active:  engine.GetStore[component.ActiveTreeComponent](world),
		actions: engine.GetStore[component.ActionComponent](world),
	}
}

// Priority returns the system's priority
func (s *DeathSystem) Priority() int {
	return parameter.PriorityDeath
}

// Update promotes zero health to death exactly once
func (s *DeathSystem) Update(world *engine.World, dt time.Duration) {
	for _, e := range s.health.All() {
		h, _ := s.health.Get(e)
		if h.Value > 0 || s.dead.Has(e) {
			continue
		}

		s.dead.Add(e, component.DeadComponent{})
		s.active.Remove(e)
		s.actions.Add(e, component.ActionComponent{Kind: component.ActionEmpty})

		s.log.Info("agent died", zap.Uint64("entity", uint64(e)))
		world.PushEvent(event.EventAgentDied, &event.AgentDiedPayload{Entity: e})
	}
}
