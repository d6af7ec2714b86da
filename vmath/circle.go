package vmath

import (
	"math"
)

// CircleDistribution returns count unit directions evenly spaced around
// the vertical axis, starting from the flattened forward direction
// Returns nil when forward has no ground-plane component
func CircleDistribution(forward Vec3, count int) []Vec3 {
	base := V3Normalize(V3XZFlat(forward))
	if base == (Vec3{}) || count <= 0 {
		return nil
	}

	dirs := make([]Vec3, count)
	step := 2 * math.Pi / float64(count)
	for i := range dirs {
		dirs[i] = RotateY(base, float64(i)*step)
	}
	return dirs
}
