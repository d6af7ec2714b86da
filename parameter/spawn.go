package parameter

import "time"

// Spawn Pipeline
const (
	// SpawnIndicateDuration is how long the warning indicator shows
	// before the enemy body exists
	SpawnIndicateDuration = 3000 * time.Millisecond

	// SpawnMaterializeDuration is how long the body exists with a hitbox
	// but no behavior
	SpawnMaterializeDuration = 1000 * time.Millisecond

	// SpawnFinishDuration is the terminal stage, completes immediately
	SpawnFinishDuration = 0 * time.Millisecond
)
