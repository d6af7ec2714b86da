package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// ResampleQuality trades CPU for fidelity in time-scaled playback
	ResampleQuality = 4
)

// Sound Effect Shaping
const (
	GunshotDuration = 150 * time.Millisecond
	GunshotAttack   = 2 * time.Millisecond
	GunshotRelease  = 120 * time.Millisecond

	BurstDuration = 350 * time.Millisecond
	BurstAttack   = 5 * time.Millisecond
	BurstRelease  = 280 * time.Millisecond

	ImpactDuration = 60 * time.Millisecond
	ImpactAttack   = 1 * time.Millisecond
	ImpactRelease  = 50 * time.Millisecond

	SwingDuration = 250 * time.Millisecond
	SwingAttack   = 40 * time.Millisecond
	SwingRelease  = 180 * time.Millisecond

	StompDuration = 180 * time.Millisecond
	StompAttack   = 3 * time.Millisecond
	StompRelease  = 150 * time.Millisecond

	SpawnNoteDuration = 200 * time.Millisecond
	SpawnAttack       = 10 * time.Millisecond
	SpawnRelease      = 140 * time.Millisecond
)
