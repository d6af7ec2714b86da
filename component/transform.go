package component

import (
	"github.com/lixenwraith/revenant/vmath"
)

// TransformComponent is world-space placement for an entity
// Yaw is rotation around the vertical axis; full orientation is not modeled
type TransformComponent struct {
	Position vmath.Vec3
	Yaw      float64
	Scale    float64
}

// Forward returns the unit forward vector on the ground plane
func (t TransformComponent) Forward() vmath.Vec3 {
	return vmath.YawForward(t.Yaw)
}
