package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/bt"
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// TargetingActions implements the track and target behavior leaves
//
// Track picks the closest opposing combatant as the attack target.
// Target converts the attack target into a steering target according
// to the agent's path behavior and turns the body toward it
type TargetingActions struct {
	world *engine.World
	log   *zap.Logger

	brains     *engine.Store[bt.Brain]
	transforms *engine.Store[component.TransformComponent]
	factions   *engine.Store[component.FactionComponent]
	dead       *engine.Store[component.DeadComponent]
	agents     *engine.Store[component.AgentComponent]
	targets    *engine.Store[component.AttackTargetComponent]
	navTargets *engine.Store[component.AgentTargetComponent]
	paths      *engine.Store[component.PathBehaviorComponent]
	rawVels    *engine.Store[component.RawVelocityComponent]
}

// NewTargetingActions creates the targeting leaves and caches their stores
func NewTargetingActions(world *engine.World, log *zap.Logger) *TargetingActions {
	return &TargetingActions{
		world:      world,
		log:        log.Named("targeting"),
		brains:     engine.GetStore[bt.Brain](world),
		transforms: engine.GetStore[component.TransformComponent](world),
		factions:   engine.GetStore[component.FactionComponent](world),
		dead:       engine.GetStore[component.DeadComponent](world),
		agents:     engine.GetStore[component.AgentComponent](world),
		targets:    engine.GetStore[component.AttackTargetComponent](world),
		navTargets: engine.GetStore[component.AgentTargetComponent](world),
		paths:      engine.GetStore[component.PathBehaviorComponent](world),
		rawVels:    engine.GetStore[component.RawVelocityComponent](world),
	}
}

// Register binds the leaves into the behavior driver
func (a *TargetingActions) Register(b *BehaviorSystem) {
	b.Register(component.ActionTrack, a.track)
	b.Register(component.ActionTarget, a.target)
}

// track acquires the closest live entity of the opposing faction
func (a *TargetingActions) track(world *engine.World, e core.Entity) {
	faction, _ := a.factions.Get(e)
	src, ok := a.transforms.Get(e)
	if !ok {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}

	best := core.NoEntity
	bestDistance := math.MaxFloat64
	for _, candidate := range a.factions.All() {
		if candidate == e || a.dead.Has(candidate) {
			continue
		}
		other, _ := a.factions.Get(candidate)
		if other.Faction == faction.Faction {
			continue
		}
		dst, ok := a.transforms.Get(candidate)
		if !ok {
			continue
		}
		distance := vmath.V3Distance(src.Position, dst.Position)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	if best != core.NoEntity {
		a.targets.Add(e, component.AttackTargetComponent{Entity: best})
		WriteVerdict(a.brains, e, bt.VerdictSuccess)
	} else {
		a.targets.Remove(e)
		WriteVerdict(a.brains, e, bt.VerdictFailure)
	}
}

// target steers toward the attack target and turns the body to face it
func (a *TargetingActions) target(world *engine.World, e core.Entity) {
	attack, ok := a.targets.Get(e)
	if !ok {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}
	transform, ok := a.transforms.Get(e)
	if !ok {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}
	targetTransform, ok := a.transforms.Get(attack.Entity)
	if !ok {
		a.targets.Remove(e)
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}

	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)
	dt := physicsTime.DeltaTime.Seconds()

	direction := vmath.V3XZFlat(vmath.V3Sub(targetTransform.Position, transform.Position))

	agent, _ := a.agents.Get(e)
	path, hasPath := a.paths.Get(e)
	if !hasPath {
		path = component.PathBehaviorComponent{
			Kind:     component.PathBeeline,
			Velocity: parameter.DefaultBeelineVelocity,
		}
	}

	switch path.Kind {
	case component.PathBeeline:
		agent.MaxVelocity = path.Velocity
		a.agents.Add(e, agent)
		a.navTargets.Add(e, component.AgentTargetComponent{
			Kind:   component.TargetEntity,
			Entity: attack.Entity,
		})

	case component.PathStrafe:
		angular := path.CircularVelocity
		if path.CircularKind == component.CircularLinear {
			if length := vmath.V3Mag(direction); length > 0 {
				angular = path.CircularVelocity / length
			}
		}
		agent.MaxVelocity = math.Hypot(path.RadialVelocity, angular)
		a.agents.Add(e, agent)

		// advance radially, then sweep around the target to get the
		// instantaneous strafe direction for this frame
		next := vmath.V3Add(transform.Position,
			vmath.V3Scale(vmath.V3Normalize(direction), path.RadialVelocity*dt))
		next = vmath.RotateAroundY(next, targetTransform.Position, angular*dt)

		ofst := vmath.V3Normalize(vmath.V3Sub(next, transform.Position))
		a.navTargets.Add(e, component.AgentTargetComponent{
			Kind:  component.TargetPoint,
			Point: vmath.V3Add(transform.Position, vmath.V3Scale(ofst, parameter.StrafeTargetDistance)),
		})
	}

	// proportional yaw controller toward the target
	angle := vmath.SignedYawBetween(transform.Forward(), direction)
	raw, _ := a.rawVels.Get(e)
	raw.AngularY = parameter.AgentAngularVelocityP * angle
	a.rawVels.Add(e, raw)

	WriteVerdict(a.brains, e, bt.VerdictSuccess)
}
