package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundStomp   SoundType = iota // Screamer leg touchdown
	SoundGunshot                  // Dummy single shot
	SoundBurst                    // Boombox ring burst
	SoundImpact                   // Bullet hit
	SoundSwing                    // Sledge swing
	SoundSpawn                    // Spawn materialization
	SoundTypeCount
)
