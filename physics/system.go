// Package physics steps collision bodies on the ground plane
//
// World X/Z maps onto the 2D space; Y is not simulated. Agents and
// projectiles are kinematic bodies whose velocity the game writes each
// frame; walls come from the nav islands as static boxes. Contacts are
// reported as events, never resolved here.
package physics

import (
	"time"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/navigation"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeDamage
	collisionTypeWall
)

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

type contact struct {
	damageEntity core.Entity
	hitEntity    core.Entity
}

// System owns the cp.Space and mirrors entity state in and out of it
type System struct {
	world *engine.World
	log   *zap.Logger
	space *cp.Space

	bodies      map[core.Entity]*bodyInfo
	shapeOwners map[*cp.Shape]core.Entity
	contacts    []contact
	wallsBuilt  map[int]bool

	transforms *engine.Store[component.TransformComponent]
	velocities *engine.Store[component.VelocityComponent]
	agents     *engine.Store[component.AgentComponent]
	damage     *engine.Store[component.ContactDamageComponent]
	hitboxes   *engine.Store[component.HitboxComponent]
	rewinds    *engine.Store[component.RewindComponent]
}

// NewSystem creates the physics system with an empty space
func NewSystem(world *engine.World, log *zap.Logger) *System {
	s := &System{
		world:       world,
		log:         log.Named("physics"),
		space:       cp.NewSpace(),
		bodies:      make(map[core.Entity]*bodyInfo),
		shapeOwners: make(map[*cp.Shape]core.Entity),
		wallsBuilt:  make(map[int]bool),
		transforms:  engine.GetStore[component.TransformComponent](world),
		velocities:  engine.GetStore[component.VelocityComponent](world),
		agents:      engine.GetStore[component.AgentComponent](world),
		damage:      engine.GetStore[component.ContactDamageComponent](world),
		hitboxes:    engine.GetStore[component.HitboxComponent](world),
		rewinds:     engine.GetStore[component.RewindComponent](world),
	}
	s.space.Iterations = 10

	handler := s.space.NewCollisionHandler(collisionTypeDamage, collisionTypeBody)
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, _ interface{}) bool {
		a, b := arb.Shapes()
		dealer, okA := s.shapeOwners[a]
		hit, okB := s.shapeOwners[b]
		if okA && okB {
			s.contacts = append(s.contacts, contact{damageEntity: dealer, hitEntity: hit})
		}
		return false // Sensors only, no solve
	}

	return s
}

// Priority returns the system's priority
func (s *System) Priority() int {
	return parameter.PriorityPhysics
}

// Update syncs bodies, steps the space, and writes positions back
func (s *System) Update(world *engine.World, dt time.Duration) {
	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)
	step := physicsTime.DeltaTime.Seconds()

	if registry, ok := engine.GetResource[*navigation.Registry](world.Resources); ok {
		s.buildWalls(registry)
	}

	s.syncBodies()

	if step > 0 {
		s.space.Step(step)
	}

	s.syncTransforms(world, step)
	s.flushContacts(world)
}

// syncBodies mirrors entity transforms and velocities into the space
// Rewinding entities are frozen in place; their transform is driven by
// history playback instead
func (s *System) syncBodies() {
	live := make(map[core.Entity]struct{})

	for _, e := range s.transforms.All() {
		isAgent := s.agents.Has(e)
		isDealer := s.damage.Has(e)
		isHitbox := s.hitboxes.Has(e)
		if !isAgent && !isDealer && !isHitbox {
			continue
		}
		live[e] = struct{}{}

		info, ok := s.bodies[e]
		if !ok {
			info = s.addBody(e, isDealer)
		}

		t, _ := s.transforms.Get(e)
		info.body.SetPosition(cp.Vector{X: t.Position.X, Y: t.Position.Z})

		if s.rewinds.Has(e) {
			info.body.SetVelocityVector(cp.Vector{})
			continue
		}
		vel, _ := s.velocities.Get(e)
		info.body.SetVelocityVector(cp.Vector{X: vel.Linear.X, Y: vel.Linear.Z})
	}

	// drop bodies whose entity lost its collision role or despawned
	for e, info := range s.bodies {
		if _, ok := live[e]; ok {
			continue
		}
		s.space.RemoveShape(info.shape)
		s.space.RemoveBody(info.body)
		delete(s.shapeOwners, info.shape)
		delete(s.bodies, e)
	}
}

// addBody registers a kinematic circle for the entity
func (s *System) addBody(e core.Entity, dealer bool) *bodyInfo {
	body := cp.NewKinematicBody()
	s.space.AddBody(body)

	radius := parameter.HumanoidRadius
	if agent, ok := s.agents.Get(e); ok && agent.Radius > 0 {
		radius = agent.Radius
	} else if t, ok := s.transforms.Get(e); ok && t.Scale > 0 {
		radius = t.Scale / 2
	}

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(true)
	if dealer {
		shape.SetCollisionType(collisionTypeDamage)
	} else {
		shape.SetCollisionType(collisionTypeBody)
	}
	s.space.AddShape(shape)

	info := &bodyInfo{body: body, shape: shape}
	s.bodies[e] = info
	s.shapeOwners[shape] = e
	return info
}

// syncTransforms writes stepped positions back and integrates yaw
func (s *System) syncTransforms(world *engine.World, step float64) {
	for e, info := range s.bodies {
		if s.rewinds.Has(e) {
			continue
		}
		t, ok := s.transforms.Get(e)
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.Position.X = pos.X
		t.Position.Z = pos.Y

		if vel, ok := s.velocities.Get(e); ok {
			t.Position.Y += vel.Linear.Y * step
			t.Yaw = vmath.WrapAngle(t.Yaw + vel.AngularY*step)
		}
		s.transforms.Add(e, t)
	}
}

// buildWalls mirrors each island's wall cells as static boxes, once
func (s *System) buildWalls(registry *navigation.Registry) {
	for _, island := range registry.All() {
		if s.wallsBuilt[island.ID] {
			continue
		}
		for y := 0; y < island.Height; y++ {
			for x := 0; x < island.Width; x++ {
				if !island.Blocked(x, y) {
					continue
				}
				center := island.CellToWorld(navigation.Cell{X: x, Y: y})
				half := island.CellSize / 2
				shape := cp.NewBox2(s.space.StaticBody, cp.BB{
					L: center.X - half,
					B: center.Z - half,
					R: center.X + half,
					T: center.Z + half,
				}, 0)
				shape.SetCollisionType(collisionTypeWall)
				s.space.AddShape(shape)
			}
		}
		s.wallsBuilt[island.ID] = true
	}
}

// flushContacts emits a contact event per recorded pair
func (s *System) flushContacts(world *engine.World) {
	for _, c := range s.contacts {
		world.PushEvent(event.EventContactDamage, &event.ContactPayload{
			DamageEntity: c.damageEntity,
			HitEntity:    c.hitEntity,
		})
	}
	s.contacts = s.contacts[:0]
}
