package parameter

import "time"

// Shared Agent Tuning
const (
	// HumanoidRadius is the nav agent radius for human-sized enemies
	HumanoidRadius = 0.5

	// AgentAngularVelocityP is the proportional gain of the yaw controller
	AgentAngularVelocityP = 1.0

	// StrafeTargetDistance is how far ahead of the agent the strafe
	// steering point is projected
	StrafeTargetDistance = 64.0

	// DefaultBeelineVelocity is the fallback approach speed
	DefaultBeelineVelocity = 1.0

	// PoseBlendDuration is the crossfade into the aim and idle clips
	PoseBlendDuration = 150 * time.Millisecond
)

// Dummy & Boombox
const (
	// DummyMaxVelocity is the chase speed for dummy-tier enemies
	DummyMaxVelocity = 2.0

	// ShotCooldownDuration gates successive shots
	ShotCooldownDuration = 2 * time.Second

	// DummyBulletSpeed is the muzzle velocity of the single aimed shot
	DummyBulletSpeed = 10.0

	// DummyBulletScale is the projectile visual and collider scale
	DummyBulletScale = 0.5

	// DummyBulletDamage is applied per projectile hit
	DummyBulletDamage = 5.0
)

// Boombox Burst
const (
	// BoomboxBulletCount is directions in the radial burst
	BoomboxBulletCount = 16

	// BoomboxBulletSize is the projectile scale
	BoomboxBulletSize = 0.5

	// BoomboxEndSpeed is bullet speed after drag expires
	BoomboxEndSpeed = 3.0

	// BoomboxDragDuration is how long the drag force acts
	BoomboxDragDuration = 500 * time.Millisecond

	// BoomboxDragDistance is total travel during the drag phase
	BoomboxDragDistance = 8.0

	// BoomboxBeginSpeed is the muzzle speed, derived so the bullet covers
	// BoomboxDragDistance while decelerating to BoomboxEndSpeed
	// v0 = 2*d/t - v1
	BoomboxBeginSpeed = 2*BoomboxDragDistance/0.5 - BoomboxEndSpeed

	// BoomboxDragAccel is the (negative) drag acceleration along the shot direction
	BoomboxDragAccel = (BoomboxEndSpeed - BoomboxBeginSpeed) / 0.5
)

// Screamer
const (
	// ScreamerRadius is the nav agent radius
	ScreamerRadius = 1.5

	// ScreamerMaxVelocity is the chase speed
	ScreamerMaxVelocity = 16.0

	// ScreamerLegCount is the number of procedural legs
	ScreamerLegCount = 2

	// ScreamerScareDistance is how far a foot may drift from home before
	// a step is triggered
	ScreamerScareDistance = 1.0

	// ScreamerStepDuration is seconds per step at unit time scale
	ScreamerStepDuration = 0.1

	// ScreamerStepHeight is the apex height of the step arc
	ScreamerStepHeight = 0.5
)
