package vmath

import (
	"math"
)

// RotateY rotates v around the vertical axis by angle radians
// Positive angles rotate counter-clockwise viewed from above
func RotateY(v Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// RotateAroundY rotates v around pivot on the ground plane
func RotateAroundY(v, pivot Vec3, angle float64) Vec3 {
	return V3Add(pivot, RotateY(V3Sub(v, pivot), angle))
}

// SignedYawBetween returns the signed ground-plane angle from a to b
// Result is in [-π, π]; both vectors are flattened to X/Z first
func SignedYawBetween(a, b Vec3) float64 {
	cross := a.Z*b.X - a.X*b.Z
	dot := a.X*b.X + a.Z*b.Z
	return math.Atan2(cross, dot)
}

// WrapAngle wraps an angle to [-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates between yaw angles along the shortest arc
func LerpAngle(a, b, t float64) float64 {
	return a + WrapAngle(b-a)*t
}

// YawForward returns the unit forward vector for a yaw angle
func YawForward(yaw float64) Vec3 {
	sin, cos := math.Sincos(yaw)
	return Vec3{X: sin, Z: cos}
}

// ForwardYaw returns the yaw angle of a forward vector on the ground plane
func ForwardYaw(forward Vec3) float64 {
	return math.Atan2(forward.X, forward.Z)
}
