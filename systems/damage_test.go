package systems

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
)

type damageHarness struct {
	world  *engine.World
	queue  *event.EventQueue
	router *engine.EventRouter
	frame  atomic.Int64

	sys   *DamageSystem
	death *DeathSystem

	health   *engine.Store[component.HealthComponent]
	resists  *engine.Store[component.ResistComponent]
	buffers  *engine.Store[component.DamageBufferComponent]
	hitboxes *engine.Store[component.HitboxComponent]
	damages  *engine.Store[component.Damage]
	contacts *engine.Store[component.ContactDamageComponent]
	factions *engine.Store[component.FactionComponent]
	dead     *engine.Store[component.DeadComponent]
}

func newDamageHarness(t *testing.T) *damageHarness {
	t.Helper()

	h := &damageHarness{
		world: engine.NewWorld(),
		queue: event.NewEventQueue(),
	}
	h.router = engine.NewEventRouter(h.queue)
	h.world.SetEventMetadata(h.queue, &h.frame)
	engine.AddResource(h.world.Resources, &engine.PhysicsTimeResource{
		Scale:     1.0,
		DeltaTime: 50 * time.Millisecond,
	})

	log := zap.NewNop()
	h.sys = NewDamageSystem(h.world, log)
	h.death = NewDeathSystem(h.world, log)
	h.world.AddSystem(h.sys)
	h.world.AddSystem(h.death)
	h.router.Register(h.sys)

	h.health = engine.GetStore[component.HealthComponent](h.world)
	h.resists = engine.GetStore[component.ResistComponent](h.world)
	h.buffers = engine.GetStore[component.DamageBufferComponent](h.world)
	h.hitboxes = engine.GetStore[component.HitboxComponent](h.world)
	h.damages = engine.GetStore[component.Damage](h.world)
	h.contacts = engine.GetStore[component.ContactDamageComponent](h.world)
	h.factions = engine.GetStore[component.FactionComponent](h.world)
	h.dead = engine.GetStore[component.DeadComponent](h.world)
	return h
}

func (h *damageHarness) tick() {
	h.router.DispatchAll(h.world)
	h.world.Update(50 * time.Millisecond)
	h.frame.Add(1)
}

func (h *damageHarness) newVictim(hp float64) core.Entity {
	e := h.world.CreateEntity()
	h.health.Add(e, component.HealthComponent{Value: hp})
	h.buffers.Add(e, component.DamageBufferComponent{})
	return e
}

func TestDirectDamageApplies(t *testing.T) {
	h := newDamageHarness(t)
	victim := h.newVictim(20)

	h.world.PushEvent(event.EventDamage, &event.DamagePayload{
		Target: victim,
		Damage: component.Damage{Type: component.DamageBallistic, Value: 7},
	})
	h.tick()

	hp, _ := h.health.Get(victim)
	if hp.Value != 13 {
		t.Errorf("Expected 13 health, got %v", hp.Value)
	}
}

func TestResistScalesDamage(t *testing.T) {
	h := newDamageHarness(t)
	victim := h.newVictim(20)
	h.resists.Add(victim, component.ResistComponent{
		Values: map[component.DamageType]float64{component.DamageBallistic: 0.25},
	})

	h.world.PushEvent(event.EventDamage, &event.DamagePayload{
		Target: victim,
		Damage: component.Damage{Type: component.DamageBallistic, Value: 8},
	})
	// A resisted type is scaled, an unlisted type passes through
	h.world.PushEvent(event.EventDamage, &event.DamagePayload{
		Target: victim,
		Damage: component.Damage{Type: component.DamagePhysical, Value: 4},
	})
	h.tick()

	hp, _ := h.health.Get(victim)
	if hp.Value != 10 {
		t.Errorf("Expected 20 - 6 - 4 = 10 health, got %v", hp.Value)
	}
}

func TestHealthFloorsAtZeroAndDies(t *testing.T) {
	h := newDamageHarness(t)
	victim := h.newVictim(5)

	h.world.PushEvent(event.EventDamage, &event.DamagePayload{
		Target: victim,
		Damage: component.Damage{Value: 100},
	})
	h.tick()

	hp, _ := h.health.Get(victim)
	if hp.Value != 0 {
		t.Errorf("Expected health floored at 0, got %v", hp.Value)
	}
	if !h.dead.Has(victim) {
		t.Error("Expected dead marker")
	}

	died := 0
	for _, ev := range h.queue.Consume() {
		if ev.Type == event.EventAgentDied {
			died++
		}
	}
	if died != 1 {
		t.Errorf("Expected exactly one death event, got %d", died)
	}

	// Dead entities no longer take damage, and death stays edge-triggered
	h.world.PushEvent(event.EventDamage, &event.DamagePayload{
		Target: victim,
		Damage: component.Damage{Value: 10},
	})
	h.tick()

	for _, ev := range h.queue.Consume() {
		if ev.Type == event.EventAgentDied {
			t.Error("Death event fired twice")
		}
	}
}

func TestHitboxPropagatesToOwner(t *testing.T) {
	h := newDamageHarness(t)
	owner := h.newVictim(30)

	hitbox := h.world.CreateEntity()
	h.hitboxes.Add(hitbox, component.HitboxComponent{Owner: owner})
	h.buffers.Add(hitbox, component.DamageBufferComponent{})

	h.world.PushEvent(event.EventDamage, &event.DamagePayload{
		Target: hitbox,
		Damage: component.Damage{Value: 12},
	})
	h.tick()

	hp, _ := h.health.Get(owner)
	if hp.Value != 18 {
		t.Errorf("Expected hitbox damage on owner, health 18, got %v", hp.Value)
	}

	buf, _ := h.buffers.Get(hitbox)
	if len(buf.Pending) != 0 {
		t.Errorf("Expected hitbox buffer drained, got %d pending", len(buf.Pending))
	}
}

func TestProjectileContactDespawns(t *testing.T) {
	h := newDamageHarness(t)
	victim := h.newVictim(20)

	projectile := h.world.CreateEntity()
	h.damages.Add(projectile, component.Damage{Type: component.DamageBallistic, Value: 6})
	h.contacts.Add(projectile, component.ContactDamageComponent{Kind: component.ContactDespawn})

	h.world.PushEvent(event.EventContactDamage, &event.ContactPayload{
		DamageEntity: projectile,
		HitEntity:    victim,
	})
	h.tick()

	hp, _ := h.health.Get(victim)
	if hp.Value != 14 {
		t.Errorf("Expected 14 health after projectile hit, got %v", hp.Value)
	}
	if h.world.IsAlive(projectile) {
		t.Error("Expected projectile despawned on contact")
	}
}

func TestFriendlyFireGuard(t *testing.T) {
	h := newDamageHarness(t)

	shooter := h.world.CreateEntity()
	h.factions.Add(shooter, component.FactionComponent{Faction: component.FactionEnemy})

	ally := h.newVictim(20)
	h.factions.Add(ally, component.FactionComponent{Faction: component.FactionEnemy})

	projectile := h.world.CreateEntity()
	h.damages.Add(projectile, component.Damage{Value: 6, Source: shooter})
	h.contacts.Add(projectile, component.ContactDamageComponent{Kind: component.ContactDespawn})

	h.world.PushEvent(event.EventContactDamage, &event.ContactPayload{
		DamageEntity: projectile,
		HitEntity:    ally,
	})
	h.tick()

	hp, _ := h.health.Get(ally)
	if hp.Value != 20 {
		t.Errorf("Expected same-faction contact ignored, got health %v", hp.Value)
	}
}

func TestContactDebounce(t *testing.T) {
	h := newDamageHarness(t)
	victim := h.newVictim(100)

	spikes := h.world.CreateEntity()
	h.damages.Add(spikes, component.Damage{Type: component.DamagePhysical, Value: 10})
	h.contacts.Add(spikes, component.ContactDamageComponent{
		Kind:     component.ContactDebounce,
		Debounce: 200 * time.Millisecond,
	})

	hit := func() {
		h.world.PushEvent(event.EventContactDamage, &event.ContactPayload{
			DamageEntity: spikes,
			HitEntity:    victim,
		})
		h.tick()
	}

	hit()
	hit() // Still within debounce, ignored

	hp, _ := h.health.Get(victim)
	if hp.Value != 90 {
		t.Errorf("Expected one hit within debounce, got health %v", hp.Value)
	}

	// Cooldown drains at 50ms per tick
	h.tick()
	h.tick()
	h.tick()
	hit()

	hp, _ = h.health.Get(victim)
	if hp.Value != 80 {
		t.Errorf("Expected second hit after debounce, got health %v", hp.Value)
	}
}
