package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/rewind"
)

// DamageSystem routes damage from dealers into health pools
//
// Contact events arm the dealer's contact behavior and push its damage
// into the hit entity's buffer. Each frame buffered damage propagates
// from hitboxes to their owners, is scaled by resistances, and is
// applied to health, which never falls below zero
type DamageSystem struct {
	world *engine.World
	log   *zap.Logger

	health   *engine.Store[component.HealthComponent]
	resists  *engine.Store[component.ResistComponent]
	buffers  *engine.Store[component.DamageBufferComponent]
	hitboxes *engine.Store[component.HitboxComponent]
	damages  *engine.Store[component.Damage]
	contacts *engine.Store[component.ContactDamageComponent]
	factions *engine.Store[component.FactionComponent]
	dead     *engine.Store[component.DeadComponent]
}

// NewDamageSystem creates the damage system
func NewDamageSystem(world *engine.World, log *zap.Logger) *DamageSystem {
	return &DamageSystem{
		world:    world,
		log:      log.Named("damage"),
		health:   engine.GetStore[component.HealthComponent](world),
		resists:  engine.GetStore[component.ResistComponent](world),
		buffers:  engine.GetStore[component.DamageBufferComponent](world),
		hitboxes: engine.GetStore[component.HitboxComponent](world),
		damages:  engine.GetStore[component.Damage](world),
		contacts: engine.GetStore[component.ContactDamageComponent](world),
		factions: engine.GetStore[component.FactionComponent](world),
		dead:     engine.GetStore[component.DeadComponent](world),
	}
}

// Priority returns the system's priority
func (s *DamageSystem) Priority() int {
	return parameter.PriorityDamagePropagate
}

// EventTypes returns the events this system consumes
func (s *DamageSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventContactDamage, event.EventDamage}
}

// HandleEvent buffers damage from contacts and direct requests
func (s *DamageSystem) HandleEvent(world *engine.World, ev event.GameEvent) {
	switch ev.Type {
	case event.EventContactDamage:
		if p, ok := ev.Payload.(*event.ContactPayload); ok {
			s.handleContact(world, p.DamageEntity, p.HitEntity)
		}
	case event.EventDamage:
		if p, ok := ev.Payload.(*event.DamagePayload); ok {
			s.push(p.Target, p.Damage)
		}
	}
}

// handleContact fires the dealer's contact behavior on a collision
func (s *DamageSystem) handleContact(world *engine.World, dealer, hit core.Entity) {
	contact, ok := s.contacts.Get(dealer)
	if !ok || contact.Kind == component.ContactNone || contact.Disarmed {
		return
	}
	if contact.Kind == component.ContactDebounce && contact.Cooldown > 0 {
		return
	}
	if s.sameFaction(dealer, hit) {
		return
	}

	// Despawn destroys the dealer, so its damage must be read first
	if damage, ok := s.damages.Get(dealer); ok {
		s.push(hit, damage)
		s.log.Debug("contact damage",
			zap.Uint64("dealer", uint64(dealer)),
			zap.Uint64("hit", uint64(hit)),
			zap.Float64("value", damage.Value))
	}

	switch contact.Kind {
	case component.ContactDespawn:
		rewind.Despawn(world, dealer)
	case component.ContactOnce:
		contact.Disarmed = true
		s.contacts.Add(dealer, contact)
	case component.ContactDebounce:
		contact.Cooldown = contact.Debounce
		s.contacts.Add(dealer, contact)
	}
}

// sameFaction guards against friendly fire through the dealer's source
func (s *DamageSystem) sameFaction(dealer, hit core.Entity) bool {
	source := dealer
	if damage, ok := s.damages.Get(dealer); ok && damage.Source != core.NoEntity {
		source = damage.Source
	}
	owner := hit
	if hb, ok := s.hitboxes.Get(hit); ok {
		owner = hb.Owner
	}
	if source == owner {
		return true
	}
	a, okA := s.factions.Get(source)
	b, okB := s.factions.Get(owner)
	return okA && okB && a.Faction == b.Faction
}

// push appends damage to an entity's buffer
func (s *DamageSystem) push(target core.Entity, damage component.Damage) {
	buf, _ := s.buffers.Get(target)
	buf.Pending = append(buf.Pending, damage)
	s.buffers.Add(target, buf)
}

// Update propagates, resists, and applies all buffered damage
func (s *DamageSystem) Update(world *engine.World, dt time.Duration) {
	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)

	// debounce cooldowns run on simulation time
	for _, e := range s.contacts.All() {
		contact, _ := s.contacts.Get(e)
		if contact.Cooldown > 0 {
			contact.Cooldown -= physicsTime.DeltaTime
			if contact.Cooldown < 0 {
				contact.Cooldown = 0
			}
			s.contacts.Add(e, contact)
		}
	}

	// hitbox buffers drain into their owner's buffer
	for _, e := range s.buffers.All() {
		if s.health.Has(e) {
			continue
		}
		hb, ok := s.hitboxes.Get(e)
		if !ok {
			continue
		}
		src, _ := s.buffers.Get(e)
		if len(src.Pending) == 0 {
			continue
		}
		dst, _ := s.buffers.Get(hb.Owner)
		dst.Pending = append(dst.Pending, src.Pending...)
		s.buffers.Add(hb.Owner, dst)
		src.Pending = src.Pending[:0]
		s.buffers.Add(e, src)
	}

	// resist scales, then damage lands
	for _, e := range s.buffers.All() {
		h, ok := s.health.Get(e)
		if !ok {
			continue
		}
		buf, _ := s.buffers.Get(e)
		if len(buf.Pending) == 0 {
			continue
		}
		if s.dead.Has(e) {
			buf.Pending = buf.Pending[:0]
			s.buffers.Add(e, buf)
			continue
		}

		resist, _ := s.resists.Get(e)
		for _, damage := range buf.Pending {
			value := damage.Value * (1.0 - resist.Values[damage.Type])
			h.Value -= value
			if h.Value < 0 {
				h.Value = 0
			}
		}
		buf.Pending = buf.Pending[:0]
		s.buffers.Add(e, buf)
		s.health.Add(e, h)
	}
}
