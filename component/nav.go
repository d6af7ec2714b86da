package component

import (
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/vmath"
)

// AgentComponent registers an entity with the navigation layer
type AgentComponent struct {
	Radius      float64
	MaxVelocity float64
}

// TargetKind discriminates AgentTargetComponent
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetPoint
	TargetEntity
)

// AgentTargetComponent is where the navigation layer steers the agent
type AgentTargetComponent struct {
	Kind   TargetKind
	Point  vmath.Vec3
	Entity core.Entity
}

// AgentVelocityComponent is the velocity last applied to the agent body
// Written by locomotion so navigation can observe actual movement
type AgentVelocityComponent struct {
	Value vmath.Vec3
}

// AgentDesiredVelocityComponent is the steering output of the navigation layer
type AgentDesiredVelocityComponent struct {
	Value vmath.Vec3
}

// PathKind selects the approach pattern toward an attack target
type PathKind int

const (
	// PathBeeline heads straight for the target
	PathBeeline PathKind = iota

	// PathStrafe circles the target while closing in
	PathStrafe
)

// CircularKind selects how strafe tangential speed is specified
type CircularKind int

const (
	// CircularLinear is units per second along the circle
	CircularLinear CircularKind = iota

	// CircularAngular is radians per second around the target
	CircularAngular
)

// PathBehaviorComponent tunes target approach
type PathBehaviorComponent struct {
	Kind PathKind

	// Velocity is the approach speed for PathBeeline
	Velocity float64

	// RadialVelocity closes distance for PathStrafe
	RadialVelocity float64

	// CircularVelocity orbits the target for PathStrafe
	CircularKind     CircularKind
	CircularVelocity float64
}

// AttackTargetComponent is the enemy the agent currently fights
type AttackTargetComponent struct {
	Entity core.Entity
}

// ArchipelagoRefComponent binds an agent to a nav island
type ArchipelagoRefComponent struct {
	ID int
}
