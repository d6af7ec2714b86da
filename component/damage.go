package component

import (
	"time"

	"github.com/lixenwraith/revenant/core"
)

// DamageType discriminates resistances
type DamageType int

const (
	DamageBallistic DamageType = iota
	DamagePhysical
)

// Damage is a single damage instance
// Stored directly on projectiles and weapons as the damage they deal
type Damage struct {
	Type   DamageType
	Value  float64
	Source core.Entity // Dealer, NoEntity when environmental
}

// ContactKind selects what happens to the dealer after a damaging contact
type ContactKind int

const (
	// ContactNone deals no contact damage
	ContactNone ContactKind = iota

	// ContactDespawn destroys the dealer on first contact (projectiles)
	ContactDespawn

	// ContactOnce deals damage once, then disarms until re-armed
	ContactOnce

	// ContactDebounce re-arms after a fixed delay
	ContactDebounce
)

// ContactDamageComponent arms an entity to deal its Damage on collision
type ContactDamageComponent struct {
	Kind     ContactKind
	Debounce time.Duration // Used by ContactDebounce
	Disarmed bool          // Set by ContactOnce after dealing
	Cooldown time.Duration // Remaining debounce time
}

// HitboxComponent routes damage received by a collider to its owner
// The collider buffers damage; propagation moves it to the owner's buffer
type HitboxComponent struct {
	Owner core.Entity
}
