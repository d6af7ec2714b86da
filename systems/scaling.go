package systems

import (
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// TimeScaleSystem applies per-entity time scales to velocities and audio
// Scaled velocity is what physics integrates; the raw velocity is the
// unit-scale cache. Recovering raw from scaled each frame lets behavior
// code write either one, but only the raw cache survives a scale of zero
type TimeScaleSystem struct {
	world *engine.World

	scales     *engine.Store[component.TimeScaleComponent]
	velocities *engine.Store[component.VelocityComponent]
	rawVels    *engine.Store[component.RawVelocityComponent]
	rewinds    *engine.Store[component.RewindComponent]
}

// NewTimeScaleSystem creates the time scaling system
func NewTimeScaleSystem(world *engine.World) *TimeScaleSystem {
	return &TimeScaleSystem{
		world:      world,
		scales:     engine.GetStore[component.TimeScaleComponent](world),
		velocities: engine.GetStore[component.VelocityComponent](world),
		rawVels:    engine.GetStore[component.RawVelocityComponent](world),
		rewinds:    engine.GetStore[component.RewindComponent](world),
	}
}

// Priority returns the system's priority
func (s *TimeScaleSystem) Priority() int {
	return parameter.PriorityTimeScale
}

// Update rescales velocities and memoizes the applied scale
func (s *TimeScaleSystem) Update(world *engine.World, dt time.Duration) {
	audio, hasAudio := engine.GetResource[*engine.AudioResource](world.Resources)

	// Entities with a velocity but no scale run at unit time
	for _, e := range s.velocities.All() {
		if !s.scales.Has(e) {
			s.scales.Add(e, component.NewTimeScale())
		}
		if !s.rawVels.Has(e) {
			vel, _ := s.velocities.Get(e)
			s.rawVels.Add(e, component.RawVelocityComponent{
				Linear:   vel.Linear,
				AngularY: vel.AngularY,
			})
		}
	}

	for _, e := range s.scales.All() {
		ts, _ := s.scales.Get(e)
		applied := ts.Memoed
		scale := ts.Value()

		if vel, ok := s.velocities.Get(e); ok && !s.rewinds.Has(e) {
			raw, _ := s.rawVels.Get(e)

			// Direction may have changed since last frame, so refresh the
			// cache from the live velocity. Skipped at zero scale, where
			// the scaled velocity carries no information
			if applied > 0 {
				raw.Linear = vmath.V3Scale(vel.Linear, 1/applied)
				raw.AngularY = vel.AngularY / applied
			}

			vel.Linear = vmath.V3Scale(raw.Linear, scale)
			vel.AngularY = raw.AngularY * scale
			s.velocities.Add(e, vel)
			s.rawVels.Add(e, raw)
		}

		if hasAudio && scale != applied {
			audio.Player.SetSpeed(e, scale)
		}

		ts.Memoed = scale
		s.scales.Add(e, ts)
	}
}
