package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
)

// Sledge animation clip names
const (
	ClipWind    = "hammer.wind"
	ClipCharge  = "hammer.charge"
	ClipSwing   = "hammer.swing"
	ClipUnswing = "hammer.unswing"
)

// MeleeSystem runs the sledge wind/charge/swing state machine
//
// Holding the trigger winds the hammer; releasing at full wind swings
// it with its contact damage armed, releasing early rewinds the pose.
// The swing disarms itself once its duration elapses
type MeleeSystem struct {
	world *engine.World
	log   *zap.Logger

	winds     *engine.Store[component.WindComponent]
	windings  *engine.Store[component.WindingComponent]
	chargings *engine.Store[component.ChargingComponent]
	swingings *engine.Store[component.SwingingComponent]
	triggers  *engine.Store[component.TriggerComponent]
	rates     *engine.Store[component.FireRateComponent]
	equipped  *engine.Store[component.EquippedComponent]
	animators *engine.Store[component.AnimatorComponent]
	contacts  *engine.Store[component.ContactDamageComponent]
	damages   *engine.Store[component.Damage]
}

// NewMeleeSystem creates the melee system
func NewMeleeSystem(world *engine.World, log *zap.Logger) *MeleeSystem {
	return &MeleeSystem{
		world:     world,
		log:       log.Named("melee"),
		winds:     engine.GetStore[component.WindComponent](world),
		windings:  engine.GetStore[component.WindingComponent](world),
		chargings: engine.GetStore[component.ChargingComponent](world),
		swingings: engine.GetStore[component.SwingingComponent](world),
		triggers:  engine.GetStore[component.TriggerComponent](world),
		rates:     engine.GetStore[component.FireRateComponent](world),
		equipped:  engine.GetStore[component.EquippedComponent](world),
		animators: engine.GetStore[component.AnimatorComponent](world),
		contacts:  engine.GetStore[component.ContactDamageComponent](world),
		damages:   engine.GetStore[component.Damage](world),
	}
}

// Priority returns the system's priority
func (s *MeleeSystem) Priority() int {
	return parameter.PriorityMelee
}

// EventTypes returns the events this system consumes
func (s *MeleeSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventTriggerState, event.EventItemEquip}
}

// HandleEvent mirrors trigger state onto the owner's equipped weapons
// and arms newly equipped ones
func (s *MeleeSystem) HandleEvent(world *engine.World, ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.ItemEquipPayload:
		s.equip(p.Weapon, p.Owner)
	case *event.TriggerStatePayload:
		for _, weapon := range s.equipped.All() {
			eq, _ := s.equipped.Get(weapon)
			if eq.Owner != p.Owner {
				continue
			}
			if !s.triggers.Has(weapon) {
				continue
			}
			s.triggers.Add(weapon, component.TriggerComponent{Active: p.Active})
		}
	}
}

// equip binds a weapon to its owner with sledge defaults. Re-equipping
// keeps any accumulated wind state
func (s *MeleeSystem) equip(weapon, owner core.Entity) {
	s.equipped.Add(weapon, component.EquippedComponent{Owner: owner})
	if !s.winds.Has(weapon) {
		s.winds.Add(weapon, component.WindComponent{Max: parameter.SledgeWindMax})
	}
	if !s.rates.Has(weapon) {
		s.rates.Add(weapon, component.FireRateComponent{Rate: parameter.SledgeFireRate})
	}
	if !s.triggers.Has(weapon) {
		s.triggers.Add(weapon, component.TriggerComponent{})
	}
}

// Update steps every wound weapon through its state machine
func (s *MeleeSystem) Update(world *engine.World, dt time.Duration) {
	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)
	delta := physicsTime.DeltaTime

	for _, weapon := range s.winds.All() {
		s.step(world, weapon, delta)
	}
}

func (s *MeleeSystem) step(world *engine.World, weapon core.Entity, delta time.Duration) {
	trigger, _ := s.triggers.Get(weapon)

	// semi-automatic gate: a fresh hold starts a wind at most Rate
	// times per second
	if rate, ok := s.rates.Get(weapon); ok {
		if rate.Cooldown > 0 {
			rate.Cooldown -= delta
			if rate.Cooldown < 0 {
				rate.Cooldown = 0
			}
			s.rates.Add(weapon, rate)
		}
		if trigger.Active && !s.windings.Has(weapon) && !s.swingings.Has(weapon) && rate.Cooldown == 0 {
			s.beginWind(weapon)
			rate.Cooldown = time.Duration(float64(time.Second) / rate.Rate)
			s.rates.Add(weapon, rate)
		}
	}

	// wind charge accumulates only while winding
	wind, _ := s.winds.Get(weapon)
	if s.windings.Has(weapon) {
		wind.Charge += delta.Seconds()
	} else {
		wind.Charge = 0
	}
	s.winds.Add(weapon, wind)

	// a full wind holds its charge
	if trigger.Active && wind.Progress() >= 1.0 && !s.chargings.Has(weapon) && s.windings.Has(weapon) {
		s.chargings.Add(weapon, component.ChargingComponent{})
		if a, ok := s.animators.Get(weapon); ok {
			a.Player.Start(ClipCharge).Repeat()
		}
	}

	// release decides between swing and cancel
	if !trigger.Active && s.windings.Has(weapon) {
		s.releaseWind(world, weapon, wind)
	}

	// an elapsed swing disarms and returns to idle
	if swinging, ok := s.swingings.Get(weapon); ok {
		swinging.Elapsed += delta
		if swinging.Elapsed >= swinging.Duration {
			s.swingings.Remove(weapon)
			s.contacts.Remove(weapon)
			s.damages.Remove(weapon)
			if a, ok := s.animators.Get(weapon); ok {
				a.Player.Start(ClipUnswing).SetSpeed(parameter.SledgeUnswingSpeed)
			}
		} else {
			s.swingings.Add(weapon, swinging)
		}
	}
}

// beginWind starts pulling the hammer back, slowing or hurrying the
// wind clip so the full animation spans Wind.Max seconds
func (s *MeleeSystem) beginWind(weapon core.Entity) {
	wind, _ := s.winds.Get(weapon)
	duration := time.Duration(wind.Max * float64(time.Second))
	if a, ok := s.animators.Get(weapon); ok {
		a.Player.StartWithTransition(ClipWind,
			time.Duration(parameter.SledgeWindTransition*float64(time.Second)))
		if clip, ok := a.Player.ClipDuration(ClipWind); ok && wind.Max > 0 {
			a.Player.SetSpeed(clip.Seconds() / wind.Max)
			duration = clip
		}
	}
	s.windings.Add(weapon, component.WindingComponent{Duration: duration})
}

// releaseWind swings at full charge, rewinds the pose otherwise
func (s *MeleeSystem) releaseWind(world *engine.World, weapon core.Entity, wind component.WindComponent) {
	winding, _ := s.windings.Get(weapon)
	s.windings.Remove(weapon)
	s.chargings.Remove(weapon)

	if wind.Progress() >= 1.0 {
		owner := core.NoEntity
		if eq, ok := s.equipped.Get(weapon); ok {
			owner = eq.Owner
		}
		s.contacts.Add(weapon, component.ContactDamageComponent{Kind: component.ContactOnce})
		s.damages.Add(weapon, component.Damage{
			Type:   component.DamageBallistic,
			Value:  parameter.SledgeDamage,
			Source: owner,
		})
		swingClip := time.Second
		if a, ok := s.animators.Get(weapon); ok {
			if d, ok := a.Player.ClipDuration(ClipSwing); ok {
				swingClip = d
			}
			a.Player.Start(ClipSwing).SetSpeed(parameter.SledgeSwingSpeed)
		}
		s.swingings.Add(weapon, component.SwingingComponent{
			Duration: time.Duration(float64(swingClip) / parameter.SledgeSwingSpeed),
		})
		world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{
			Sound:  core.SoundSwing,
			Source: weapon,
		})
	} else if wind.Progress() > 0.0 {
		// play the wind back out of the reached pose
		if a, ok := s.animators.Get(weapon); ok {
			if a.Player.Elapsed() > winding.Duration {
				a.Player.SetElapsed(winding.Duration)
			}
			a.Player.SetSpeed(-parameter.SledgeUnwindSpeed)
		}
	}
}
