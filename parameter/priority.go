package parameter

// System Execution Priorities (lower runs first)
const (
	PrioritySpawner         = 5   // Spawn requests reserve entities first
	PrioritySpawnInit       = 10  // Spawn stage bootstrap before timers tick
	PrioritySpawnTick       = 20  // Stage timers advance on physics time
	PrioritySpawnTransition = 30  // Stage handoff after timers
	PriorityNavigation      = 50  // AgentTarget -> desired velocity steering
	PriorityBehavior        = 100 // Act/Think driver, all agent decisions
	PriorityLocomotion      = 200 // Desired velocity applied to bodies
	PriorityWalk            = 210 // Procedural leg stepping follows locomotion
	PriorityForce           = 250 // External forces accelerate bodies before the step
	PriorityPhysics         = 300 // Space step, contacts, projectile motion
	PriorityDamagePropagate = 400 // Hitbox buffers drain to health entities
	PriorityDamageApply     = 410
	PriorityDeath           = 420
	PriorityMelee           = 450 // Wind/charge/swing after damage resolution
	PriorityRewind          = 500 // History save and playback
	PriorityFrameIndex      = 510 // Frame counter increments after histories
	PriorityTimeScale       = 900 // Memoization runs last, after all writers
	PriorityAnimation       = 930 // Clips advance on the entity's own clock
	PriorityAudio           = 950
)
