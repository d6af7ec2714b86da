package event

// EventType represents the type of game event
type EventType int

const (
	// === Engine Event ===

	// EventWorldClear requests mass entity cleanup
	// Trigger: Demo reset, level change
	// Consumer: Game context | Payload: nil
	EventWorldClear EventType = iota

	// === Spawn Event ===

	// EventEnemySpawn requests a new enemy at a position
	// Trigger: Spawner systems, demo input
	// Consumer: Agent spawner | Payload: *EnemySpawnPayload
	EventEnemySpawn

	// EventSpawnBegan announces the spawn pipeline starting for an entity
	// Trigger: Agent spawner after reserving the entity
	// Consumer: SpawnSystem | Payload: *SpawnBeganPayload
	EventSpawnBegan

	// EventSpawnStageReached announces a stage transition
	// Trigger: SpawnSystem on timer expiry and at pipeline start
	// Consumer: SpawnSystem (timer reset), agent spawner (stage dressing) | Payload: *SpawnStagePayload
	EventSpawnStageReached

	// EventSpawnCompleted announces the pipeline finishing
	// Trigger: SpawnSystem when the final stage expires
	// Consumer: Agent spawner (behavior hookup) | Payload: *SpawnCompletedPayload
	EventSpawnCompleted

	// === Combat Event ===

	// EventDamage applies damage directly to a hit entity
	// Trigger: Projectile impact, contact resolution
	// Consumer: DamageSystem | Payload: *DamagePayload
	EventDamage

	// EventContactDamage signals a damaging contact between two colliders
	// Trigger: Physics contact callbacks
	// Consumer: DamageSystem | Payload: *ContactPayload
	EventContactDamage

	// EventAgentDied announces health reaching zero
	// Trigger: DeathSystem
	// Consumer: Audio, demo scoring | Payload: *AgentDiedPayload
	EventAgentDied

	// EventTriggerState reports the melee weapon trigger being held or released
	// Trigger: Input layer
	// Consumer: MeleeSystem | Payload: *TriggerStatePayload
	EventTriggerState

	// EventItemEquip hands a weapon entity to a combatant
	// Trigger: Spawner, demo
	// Consumer: MeleeSystem | Payload: *ItemEquipPayload
	EventItemEquip

	// === Time Event ===

	// EventRewindRequest starts history playback on an entity and its time children
	// Trigger: Input layer, demo
	// Consumer: RewindSystem | Payload: *RewindRequestPayload
	EventRewindRequest

	// === Audio Event ===

	// EventSoundRequest requests audio playback
	// Trigger: Systems requiring audio feedback
	// Consumer: AudioSystem | Payload: *SoundRequestPayload
	EventSoundRequest
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
