package parameter

// Health & Damage
const (
	// DefaultHealth is the starting health when a definition omits it
	DefaultHealth = 1.0

	// SledgeDamage is applied by a fully wound swing
	SledgeDamage = 20.0

	// SledgeWindMax is seconds of winding needed for a full swing
	SledgeWindMax = 1.0

	// SledgeSwingSpeed is the animation rate multiplier during the swing
	SledgeSwingSpeed = 4.0

	// SledgeUnwindSpeed is the animation rate multiplier while cancelling
	SledgeUnwindSpeed = 4.0

	// SledgeUnswingSpeed is the animation rate multiplier returning to rest
	SledgeUnswingSpeed = 2.0

	// SledgeFireRate gates trigger pulls per second
	SledgeFireRate = 2.0

	// SledgeWindTransition is the crossfade into the wind clip, seconds
	SledgeWindTransition = 0.1
)
