package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the simulation frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// PhysicsMaxDelta clamps a single simulation step so a stalled frame
	// cannot tunnel entities through geometry
	PhysicsMaxDelta = 100 * time.Millisecond
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)

// Behavior Driver
const (
	// BehaviorIterationLimit bounds the Act/Think loop per frame
	// A tree that never settles is terminated rather than spinning forever
	BehaviorIterationLimit = 64
)
