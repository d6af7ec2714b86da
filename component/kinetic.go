package component

import (
	"github.com/lixenwraith/revenant/vmath"
)

// VelocityComponent is the scaled velocity integrated by physics
// Values here already include the entity's time scale
type VelocityComponent struct {
	Linear   vmath.Vec3
	AngularY float64
}

// RawVelocityComponent mirrors VelocityComponent at unit time scale
// The scaling system derives the scaled velocity from this
type RawVelocityComponent struct {
	Linear   vmath.Vec3
	AngularY float64
}
