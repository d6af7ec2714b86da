package parameter

// Component History & Rewind
const (
	// MaxStorageFrames caps per-component history length
	// At 60 FPS this is 10 seconds of rewindable state
	MaxStorageFrames = 600

	// DefaultRewindFPS is frames replayed per tick when a Rewind
	// component does not specify a rate
	DefaultRewindFPS = 1
)
