package component

import (
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/vmath"
)

// StepState is an in-flight foot step along a Bezier arc
type StepState struct {
	T       float64
	Curve   vmath.CubicBezier
	FromYaw float64
	ToYaw   float64
}

// WalkProc is one procedural leg
// Home is the foot anchor in body space; Foot is the current world
// placement, frozen between steps
type WalkProc struct {
	Home    vmath.Vec3
	Foot    vmath.Vec3
	FootYaw float64
	Step    *StepState
}

// WalkProcsComponent drives procedural leg stepping
// Legs step one at a time in round-robin order when any foot drifts
// beyond ScareDistance from its home position
type WalkProcsComponent struct {
	Procs         []WalkProc
	ScareDistance float64
	StepDuration  float64 // Seconds per step at unit time scale
	StepHeight    float64
	Sound         core.SoundType
	ActiveProc    int
}
