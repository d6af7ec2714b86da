package systems

import (
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
)

// AnimationSystem advances every animator on its entity's own clock
// Rewinding entities hold their pose; history drives them instead
type AnimationSystem struct {
	world *engine.World

	animators *engine.Store[component.AnimatorComponent]
	scales    *engine.Store[component.TimeScaleComponent]
	rewinds   *engine.Store[component.RewindComponent]
}

// NewAnimationSystem creates the animation system
func NewAnimationSystem(world *engine.World) *AnimationSystem {
	return &AnimationSystem{
		world:     world,
		animators: engine.GetStore[component.AnimatorComponent](world),
		scales:    engine.GetStore[component.TimeScaleComponent](world),
		rewinds:   engine.GetStore[component.RewindComponent](world),
	}
}

// Priority returns the system's priority
func (s *AnimationSystem) Priority() int {
	return parameter.PriorityAnimation
}

// Update advances all playing clips
func (s *AnimationSystem) Update(world *engine.World, dt time.Duration) {
	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)

	for _, e := range s.animators.All() {
		if s.rewinds.Has(e) {
			continue
		}
		a, _ := s.animators.Get(e)
		if a.Player == nil {
			continue
		}
		scale := 1.0
		if ts, ok := s.scales.Get(e); ok {
			scale = ts.Value()
		}
		a.Player.Advance(time.Duration(float64(physicsTime.DeltaTime) * scale))
	}
}
