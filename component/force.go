package component

import (
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/vmath"
)

// ExternalForceComponent is a constant acceleration applied by physics
// Used for projectile drag phases
type ExternalForceComponent struct {
	Force vmath.Vec3
}

// ForceTimerComponent expires an external force
// Ticked on physics time scaled by the entity's time scale; on expiry
// the force is zeroed and both components removed
type ForceTimerComponent struct {
	Timer core.Timer
}
