package systems

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/bt"
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/rewind"
	"github.com/lixenwraith/revenant/vmath"
)

// FireActions implements the combat behavior leaves
//
// FireCheck gates on the shot cooldown, Fire discharges the archetype's
// weapon at the attack target, Chase copies the steering output into the
// body velocity while the cooldown runs
type FireActions struct {
	world *engine.World
	log   *zap.Logger

	brains     *engine.Store[bt.Brain]
	transforms *engine.Store[component.TransformComponent]
	hands      *engine.Store[component.HandsComponent]
	kinds      *engine.Store[component.AgentKindComponent]
	targets    *engine.Store[component.AttackTargetComponent]
	cooldowns  *engine.Store[component.ShotCooldownComponent]
	desired    *engine.Store[component.AgentDesiredVelocityComponent]
	agentVels  *engine.Store[component.AgentVelocityComponent]
	velocities *engine.Store[component.VelocityComponent]
	rawVels    *engine.Store[component.RawVelocityComponent]
	damages    *engine.Store[component.Damage]
	contacts   *engine.Store[component.ContactDamageComponent]
	scales     *engine.Store[component.TimeScaleComponent]
	forces     *engine.Store[component.ExternalForceComponent]
	forceTimer *engine.Store[component.ForceTimerComponent]
}

// NewFireActions creates the combat leaves and caches their stores
func NewFireActions(world *engine.World, log *zap.Logger) *FireActions {
	return &FireActions{
		world:      world,
		log:        log.Named("fire"),
		brains:     engine.GetStore[bt.Brain](world),
		transforms: engine.GetStore[component.TransformComponent](world),
		hands:      engine.GetStore[component.HandsComponent](world),
		kinds:      engine.GetStore[component.AgentKindComponent](world),
		targets:    engine.GetStore[component.AttackTargetComponent](world),
		cooldowns:  engine.GetStore[component.ShotCooldownComponent](world),
		desired:    engine.GetStore[component.AgentDesiredVelocityComponent](world),
		agentVels:  engine.GetStore[component.AgentVelocityComponent](world),
		velocities: engine.GetStore[component.VelocityComponent](world),
		rawVels:    engine.GetStore[component.RawVelocityComponent](world),
		damages:    engine.GetStore[component.Damage](world),
		contacts:   engine.GetStore[component.ContactDamageComponent](world),
		scales:     engine.GetStore[component.TimeScaleComponent](world),
		forces:     engine.GetStore[component.ExternalForceComponent](world),
		forceTimer: engine.GetStore[component.ForceTimerComponent](world),
	}
}

// Register binds the leaves into the behavior driver
func (a *FireActions) Register(b *BehaviorSystem) {
	b.Register(component.ActionFireCheck, a.fireCheck)
	b.Register(component.ActionFireWait, a.fireWait)
	b.Register(component.ActionFire, a.fire)
	b.Register(component.ActionChase, a.chase)
}

// fireCheck ticks the shot cooldown on simulation time
// Succeeds only on the tick the cooldown completes
func (a *FireActions) fireCheck(world *engine.World, e core.Entity) {
	cd, ok := a.cooldowns.Get(e)
	if !ok {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}

	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)
	cd.Timer.Tick(physicsTime.DeltaTime)
	a.cooldowns.Add(e, cd)

	if cd.Timer.JustFinished() {
		WriteVerdict(a.brains, e, bt.VerdictSuccess)
	} else {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
	}
}

// fireWait ticks the shot cooldown like fireCheck but keeps its branch
// alive with Running until the cooldown completes
func (a *FireActions) fireWait(world *engine.World, e core.Entity) {
	cd, ok := a.cooldowns.Get(e)
	if !ok {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}

	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)
	cd.Timer.Tick(physicsTime.DeltaTime)
	a.cooldowns.Add(e, cd)

	if cd.Timer.JustFinished() {
		WriteVerdict(a.brains, e, bt.VerdictSuccess)
	} else {
		WriteVerdict(a.brains, e, bt.VerdictRunning)
	}
}

// chase copies the steering output into the body velocity
func (a *FireActions) chase(world *engine.World, e core.Entity) {
	des, _ := a.desired.Get(e)

	vel, _ := a.velocities.Get(e)
	vel.Linear = des.Value
	a.velocities.Add(e, vel)
	a.agentVels.Add(e, component.AgentVelocityComponent{Value: des.Value})

	WriteVerdict(a.brains, e, bt.VerdictSuccess)
}

// fire discharges the archetype's weapon
func (a *FireActions) fire(world *engine.World, e core.Entity) {
	kind, _ := a.kinds.Get(e)
	switch kind.Kind {
	case component.KindDummy:
		a.fireAimed(world, e)
	case component.KindBoombox:
		a.fireBurst(world, e)
	default:
		a.log.Warn("agent cannot fire", zap.Uint64("entity", uint64(e)))
		WriteVerdict(a.brains, e, bt.VerdictFailure)
	}
}

// fireAimed launches a single bullet from the dominant hand at the
// attack target, flattened to the muzzle height
func (a *FireActions) fireAimed(world *engine.World, e core.Entity) {
	attack, ok := a.targets.Get(e)
	if !ok {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}
	transform, _ := a.transforms.Get(e)
	targetTransform, ok := a.transforms.Get(attack.Entity)
	if !ok {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}

	origin := a.muzzle(e, transform)
	dir := vmath.V3Normalize(vmath.V3XZFlat(vmath.V3Sub(targetTransform.Position, origin)))

	a.spawnBullet(world, e, origin, dir, parameter.DummyBulletSpeed, parameter.DummyBulletScale,
		component.Damage{
			Type:   component.DamageBallistic,
			Value:  parameter.DummyBulletDamage,
			Source: e,
		}, false)

	WriteVerdict(a.brains, e, bt.VerdictSuccess)
}

// fireBurst launches a ring of decelerating bullets around the agent
func (a *FireActions) fireBurst(world *engine.World, e core.Entity) {
	transform, _ := a.transforms.Get(e)
	origin := a.muzzle(e, transform)

	for _, dir := range vmath.CircleDistribution(transform.Forward(), parameter.BoomboxBulletCount) {
		a.spawnBullet(world, e, origin, dir, parameter.BoomboxBeginSpeed, parameter.BoomboxBulletSize,
			component.Damage{
				Type:   component.DamageBallistic,
				Value:  parameter.DummyBulletDamage,
				Source: e,
			}, true)
	}

	WriteVerdict(a.brains, e, bt.VerdictSuccess)
}

// muzzle is the world-space position of the dominant hand
func (a *FireActions) muzzle(e core.Entity, transform component.TransformComponent) vmath.Vec3 {
	hands, ok := a.hands.Get(e)
	if !ok {
		return transform.Position
	}
	return vmath.V3Add(transform.Position, vmath.RotateY(hands.Dominant, transform.Yaw))
}

// spawnBullet creates a projectile entity moving along dir
// Dragged bullets decelerate for a fixed window after launch
func (a *FireActions) spawnBullet(world *engine.World, source core.Entity, origin, dir vmath.Vec3,
	speed, scale float64, damage component.Damage, dragged bool) {
	e := world.CreateEntity()
	a.transforms.Add(e, component.TransformComponent{
		Position: origin,
		Yaw:      vmath.ForwardYaw(dir),
		Scale:    scale,
	})
	linear := vmath.V3Scale(dir, speed)
	a.rawVels.Add(e, component.RawVelocityComponent{Linear: linear})
	a.velocities.Add(e, component.VelocityComponent{Linear: linear})
	a.damages.Add(e, damage)
	a.contacts.Add(e, component.ContactDamageComponent{Kind: component.ContactDespawn})
	a.scales.Add(e, component.NewTimeScale())
	// bullets rewind with the agent that fired them
	rewind.SetTimeParent(world, e, source)
	if dragged {
		a.forces.Add(e, component.ExternalForceComponent{
			Force: vmath.V3Scale(dir, parameter.BoomboxDragAccel),
		})
		a.forceTimer.Add(e, component.ForceTimerComponent{
			Timer: core.NewTimer(parameter.BoomboxDragDuration, core.TimerOnce),
		})
	}

	world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{
		Sound:  core.SoundGunshot,
		Source: source,
	})
}
