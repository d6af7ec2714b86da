package systems

import (
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// ForceSystem applies timed external forces to body velocities
//
// Forces accelerate on the entity's own clock: the timer and the applied
// acceleration both scale with the entity's time scale, so a slowed
// projectile drags for proportionally longer wall time
type ForceSystem struct {
	world *engine.World

	forces     *engine.Store[component.ExternalForceComponent]
	timers     *engine.Store[component.ForceTimerComponent]
	velocities *engine.Store[component.VelocityComponent]
	scales     *engine.Store[component.TimeScaleComponent]
	rewinds    *engine.Store[component.RewindComponent]
}

// NewForceSystem creates the force system
func NewForceSystem(world *engine.World) *ForceSystem {
	return &ForceSystem{
		world:      world,
		forces:     engine.GetStore[component.ExternalForceComponent](world),
		timers:     engine.GetStore[component.ForceTimerComponent](world),
		velocities: engine.GetStore[component.VelocityComponent](world),
		scales:     engine.GetStore[component.TimeScaleComponent](world),
		rewinds:    engine.GetStore[component.RewindComponent](world),
	}
}

// Priority returns the system's priority
func (s *ForceSystem) Priority() int {
	return parameter.PriorityForce
}

// Update accelerates forced bodies and expires finished forces
func (s *ForceSystem) Update(world *engine.World, dt time.Duration) {
	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)

	for _, e := range s.forces.All() {
		if s.rewinds.Has(e) {
			continue
		}

		scale := 1.0
		if ts, ok := s.scales.Get(e); ok {
			scale = ts.Value()
		}
		entityDelta := time.Duration(float64(physicsTime.DeltaTime) * scale)

		force, _ := s.forces.Get(e)
		if vel, ok := s.velocities.Get(e); ok {
			// velocity is stored pre-scaled, so acceleration scales twice:
			// once for the shorter entity tick, once for the slowed motion
			vel.Linear = vmath.V3Add(vel.Linear,
				vmath.V3Scale(force.Force, entityDelta.Seconds()*scale))
			s.velocities.Add(e, vel)
		}

		timer, ok := s.timers.Get(e)
		if !ok {
			continue
		}
		timer.Timer.Tick(entityDelta)
		if timer.Timer.Finished() {
			s.forces.Remove(e)
			s.timers.Remove(e)
		} else {
			s.timers.Add(e, timer)
		}
	}
}
