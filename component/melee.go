package component

import (
	"time"

	"github.com/lixenwraith/revenant/anim"
	"github.com/lixenwraith/revenant/core"
)

// EquippedComponent links a weapon to the combatant wielding it
type EquippedComponent struct {
	Owner core.Entity
}

// AnimatorComponent drives the entity's animation player
type AnimatorComponent struct {
	Player *anim.Player
}

// WindComponent is melee wind-up charge
type WindComponent struct {
	Charge float64
	Max    float64
}

// Progress is charge normalized to [0, 1+)
func (w WindComponent) Progress() float64 {
	return w.Charge / w.Max
}

// WindingComponent marks a weapon currently winding up
type WindingComponent struct {
	// Duration is the wind animation clip length, used to rewind
	// the animation when the swing is cancelled
	Duration time.Duration
}

// ChargingComponent marks a fully wound weapon holding its charge
type ChargingComponent struct{}

// SwingingComponent marks a weapon mid-swing
type SwingingComponent struct {
	// Duration is swing clip length divided by swing speed
	Duration time.Duration
	Elapsed  time.Duration
}

// TriggerComponent is the held state of the weapon trigger
type TriggerComponent struct {
	Active bool
}

// FireRateComponent gates semi-automatic activations
type FireRateComponent struct {
	Rate     float64 // Activations per second
	Cooldown time.Duration
}
