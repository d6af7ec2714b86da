package systems

import (
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// WalkSystem drives procedural leg stepping
// Legs step one at a time in round-robin order: whenever no step is in
// flight and any foot has drifted beyond ScareDistance from its home
// anchor, the active leg begins a step, even if that particular foot is
// still in range. Stepping continues leg by leg until every foot is back
// in range
type WalkSystem struct {
	world *engine.World

	walks      *engine.Store[component.WalkProcsComponent]
	transforms *engine.Store[component.TransformComponent]
	velocities *engine.Store[component.VelocityComponent]
	scales     *engine.Store[component.TimeScaleComponent]
	rewinds    *engine.Store[component.RewindComponent]
	dead       *engine.Store[component.DeadComponent]
}

// NewWalkSystem creates the procedural walk system
func NewWalkSystem(world *engine.World) *WalkSystem {
	return &WalkSystem{
		world:      world,
		walks:      engine.GetStore[component.WalkProcsComponent](world),
		transforms: engine.GetStore[component.TransformComponent](world),
		velocities: engine.GetStore[component.VelocityComponent](world),
		scales:     engine.GetStore[component.TimeScaleComponent](world),
		rewinds:    engine.GetStore[component.RewindComponent](world),
		dead:       engine.GetStore[component.DeadComponent](world),
	}
}

// Priority returns the system's priority
func (s *WalkSystem) Priority() int {
	return parameter.PriorityWalk
}

// Update advances in-flight steps and schedules the next one
func (s *WalkSystem) Update(world *engine.World, dt time.Duration) {
	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)

	for _, e := range s.walks.All() {
		if s.rewinds.Has(e) || s.dead.Has(e) {
			continue
		}

		walk, _ := s.walks.Get(e)
		transform, ok := s.transforms.Get(e)
		if !ok {
			continue
		}

		scale := 1.0
		if ts, ok := s.scales.Get(e); ok {
			scale = ts.Value()
		}
		if walk.StepDuration <= 0 {
			continue
		}

		// Normalized step progress per frame on the entity's own clock
		step := physicsTime.DeltaTime.Seconds() * scale / walk.StepDuration

		stepping := false
		for i := range walk.Procs {
			if s.advanceProc(e, &walk.Procs[i], walk.Sound, step) {
				stepping = true
			}
		}

		if !stepping && !s.allInRange(&walk, transform) {
			vel, _ := s.velocities.Get(e)
			s.beginStep(&walk.Procs[walk.ActiveProc], &walk, transform, vel)
			walk.ActiveProc = (walk.ActiveProc + 1) % len(walk.Procs)
		}

		s.walks.Add(e, walk)
	}
}

// homeWorld resolves a leg's anchor from body space to world space
func homeWorld(proc *component.WalkProc, transform component.TransformComponent) vmath.Vec3 {
	return vmath.V3Add(transform.Position, vmath.RotateY(proc.Home, transform.Yaw))
}

func (s *WalkSystem) allInRange(walk *component.WalkProcsComponent, transform component.TransformComponent) bool {
	for i := range walk.Procs {
		proc := &walk.Procs[i]
		if vmath.V3Distance(homeWorld(proc, transform), proc.Foot) > walk.ScareDistance {
			return false
		}
	}
	return true
}

// beginStep plans a foot arc from its current placement to the predicted
// home position, so the foot lands where the anchor will be when the
// step finishes rather than where it is now
func (s *WalkSystem) beginStep(proc *component.WalkProc, walk *component.WalkProcsComponent, transform component.TransformComponent, vel component.VelocityComponent) {
	yawDelta := vel.AngularY * walk.StepDuration
	dst := homeWorld(proc, transform)
	dst = vmath.V3Add(dst, vmath.RotateY(vmath.V3Scale(vel.Linear, walk.StepDuration), yawDelta))

	proc.Step = &component.StepState{
		T:       0,
		Curve:   vmath.StepArc(proc.Foot, dst, walk.StepHeight),
		FromYaw: proc.FootYaw,
		ToYaw:   vmath.WrapAngle(transform.Yaw + yawDelta),
	}
}

// advanceProc moves an in-flight step and reports whether one is active
func (s *WalkSystem) advanceProc(e core.Entity, proc *component.WalkProc, sound core.SoundType, step float64) bool {
	if proc.Step == nil {
		return false
	}

	st := proc.Step
	st.T += step
	if st.T > 1.0 {
		st.T = 1.0
	}

	proc.Foot = st.Curve.Position(st.T)
	proc.FootYaw = vmath.LerpAngle(st.FromYaw, st.ToYaw, st.T)

	if st.T >= 1.0 {
		proc.Step = nil
		s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{
			Sound:  sound,
			Source: e,
		})
		return false
	}
	return true
}
