package component

// HealthComponent is remaining hit points, floored at zero
type HealthComponent struct {
	Value float64
}

// ResistComponent scales incoming damage per damage type
// A resistance of 0.25 removes a quarter of matching damage
type ResistComponent struct {
	Values map[DamageType]float64
}

// DamageBufferComponent accumulates damage instances within a frame
// Drained by the damage application system every tick
type DamageBufferComponent struct {
	Pending []Damage
}

// DeadComponent marks an entity whose health reached zero
// Dead entities no longer receive damage or run behavior
type DeadComponent struct{}
