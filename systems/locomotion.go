package systems

import (
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// LocomotionSystem keeps agent bodies within their movement envelope
//
// Behavior leaves write body velocity directly; this system clamps the
// planar speed to the agent's maximum, pins agents to the ground plane
// and mirrors the applied velocity for the navigation layer
type LocomotionSystem struct {
	world *engine.World

	agents     *engine.Store[component.AgentComponent]
	transforms *engine.Store[component.TransformComponent]
	velocities *engine.Store[component.VelocityComponent]
	agentVels  *engine.Store[component.AgentVelocityComponent]
	dead       *engine.Store[component.DeadComponent]
	rewinds    *engine.Store[component.RewindComponent]
}

// NewLocomotionSystem creates the locomotion system
func NewLocomotionSystem(world *engine.World) *LocomotionSystem {
	return &LocomotionSystem{
		world:      world,
		agents:     engine.GetStore[component.AgentComponent](world),
		transforms: engine.GetStore[component.TransformComponent](world),
		velocities: engine.GetStore[component.VelocityComponent](world),
		agentVels:  engine.GetStore[component.AgentVelocityComponent](world),
		dead:       engine.GetStore[component.DeadComponent](world),
		rewinds:    engine.GetStore[component.RewindComponent](world),
	}
}

// Priority returns the system's priority
func (s *LocomotionSystem) Priority() int {
	return parameter.PriorityLocomotion
}

// Update clamps and mirrors every live agent's velocity
func (s *LocomotionSystem) Update(world *engine.World, dt time.Duration) {
	for _, e := range s.agents.All() {
		if s.rewinds.Has(e) {
			continue
		}

		vel, ok := s.velocities.Get(e)
		if !ok {
			continue
		}

		if s.dead.Has(e) {
			// dead bodies stop where they fell
			vel.Linear = vmath.Vec3{}
			vel.AngularY = 0
			s.velocities.Add(e, vel)
			s.agentVels.Add(e, component.AgentVelocityComponent{})
			continue
		}

		agent, _ := s.agents.Get(e)
		planar := vmath.V3XZFlat(vel.Linear)
		if speed := vmath.V3Mag(planar); agent.MaxVelocity > 0 && speed > agent.MaxVelocity {
			planar = vmath.V3Scale(planar, agent.MaxVelocity/speed)
		}
		// agents never leave the ground plane
		vel.Linear = planar
		s.velocities.Add(e, vel)

		if t, ok := s.transforms.Get(e); ok && t.Position.Y != 0 {
			t.Position.Y = 0
			s.transforms.Add(e, t)
		}

		s.agentVels.Add(e, component.AgentVelocityComponent{Value: vel.Linear})
	}
}
