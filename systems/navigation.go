package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/navigation"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// NavigationSystem converts agent targets into desired velocities
//
// Agents bound to an island steer along its shared flow field so walls
// are routed around; unbound agents steer directly. The desired velocity
// is consumed by the chase leaf and the locomotion system
type NavigationSystem struct {
	world *engine.World
	log   *zap.Logger

	agents     *engine.Store[component.AgentComponent]
	targets    *engine.Store[component.AgentTargetComponent]
	transforms *engine.Store[component.TransformComponent]
	desired    *engine.Store[component.AgentDesiredVelocityComponent]
	refs       *engine.Store[component.ArchipelagoRefComponent]
	dead       *engine.Store[component.DeadComponent]
	rewinds    *engine.Store[component.RewindComponent]

	// Reused across frames to avoid per-frame allocation
	quarry map[int][]vmath.Vec3
}

// NewNavigationSystem creates the navigation system
func NewNavigationSystem(world *engine.World, log *zap.Logger) *NavigationSystem {
	return &NavigationSystem{
		world:      world,
		log:        log.Named("navigation"),
		agents:     engine.GetStore[component.AgentComponent](world),
		targets:    engine.GetStore[component.AgentTargetComponent](world),
		transforms: engine.GetStore[component.TransformComponent](world),
		desired:    engine.GetStore[component.AgentDesiredVelocityComponent](world),
		refs:       engine.GetStore[component.ArchipelagoRefComponent](world),
		dead:       engine.GetStore[component.DeadComponent](world),
		rewinds:    engine.GetStore[component.RewindComponent](world),
		quarry:     make(map[int][]vmath.Vec3),
	}
}

// Priority returns the system's priority
func (s *NavigationSystem) Priority() int {
	return parameter.PriorityNavigation
}

// Update refreshes island flow fields, then steers every targeted agent
func (s *NavigationSystem) Update(world *engine.World, dt time.Duration) {
	registry, ok := engine.GetResource[*navigation.Registry](world.Resources)
	if ok {
		s.updateFlowFields(registry)
	}

	for _, e := range s.agents.All() {
		if s.dead.Has(e) || s.rewinds.Has(e) {
			continue
		}
		transform, ok := s.transforms.Get(e)
		if !ok {
			continue
		}

		target, hasTarget := s.targets.Get(e)
		point, resolved := s.resolve(target)
		if !hasTarget || !resolved {
			s.desired.Add(e, component.AgentDesiredVelocityComponent{})
			continue
		}

		agent, _ := s.agents.Get(e)

		// inside the arrival radius there is nothing left to steer
		if vmath.V3Mag(vmath.V3XZFlat(vmath.V3Sub(point, transform.Position))) <= agent.Radius {
			s.desired.Add(e, component.AgentDesiredVelocityComponent{})
			continue
		}

		var dir vmath.Vec3
		if island := s.island(registry, ok, e); island != nil {
			dir = island.Steer(transform.Position, point, agent.Radius)
		} else {
			dir = vmath.V3Normalize(vmath.V3XZFlat(vmath.V3Sub(point, transform.Position)))
		}

		s.desired.Add(e, component.AgentDesiredVelocityComponent{
			Value: vmath.V3Scale(dir, agent.MaxVelocity),
		})
	}
}

// updateFlowFields recomputes each island's field from its quarry set
func (s *NavigationSystem) updateFlowFields(registry *navigation.Registry) {
	for k := range s.quarry {
		s.quarry[k] = s.quarry[k][:0]
	}
	for _, e := range s.agents.All() {
		ref, ok := s.refs.Get(e)
		if !ok {
			continue
		}
		target, ok := s.targets.Get(e)
		if !ok {
			continue
		}
		if point, resolved := s.resolve(target); resolved {
			s.quarry[ref.ID] = append(s.quarry[ref.ID], point)
		}
	}
	for id, points := range s.quarry {
		if island, ok := registry.Get(id); ok {
			island.Update(points)
		}
	}
}

// resolve turns a steering target into a world point
func (s *NavigationSystem) resolve(target component.AgentTargetComponent) (vmath.Vec3, bool) {
	switch target.Kind {
	case component.TargetPoint:
		return target.Point, true
	case component.TargetEntity:
		if t, ok := s.transforms.Get(target.Entity); ok {
			return t.Position, true
		}
	}
	return vmath.Vec3{}, false
}

// island returns the agent's nav island, nil when unbound
func (s *NavigationSystem) island(registry *navigation.Registry, hasRegistry bool, e core.Entity) *navigation.Archipelago {
	if !hasRegistry {
		return nil
	}
	ref, ok := s.refs.Get(e)
	if !ok {
		return nil
	}
	if island, found := registry.Get(ref.ID); found {
		return island
	}
	return nil
}
