package event

import (
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/vmath"
)

// EnemySpawnPayload contains parameters for a spawn request
type EnemySpawnPayload struct {
	Kind     string // Agent definition name (dummy, boombox, screamer)
	Position vmath.Vec3
}

// SpawnBeganPayload announces the pipeline starting for a reserved entity
type SpawnBeganPayload struct {
	Entity core.Entity
}

// SpawnStagePayload announces a stage transition
type SpawnStagePayload struct {
	Entity core.Entity
	Stage  component.SpawnStage
}

// SpawnCompletedPayload announces the pipeline finishing
type SpawnCompletedPayload struct {
	Entity core.Entity
}

// DamagePayload applies damage directly to a hit entity
type DamagePayload struct {
	Target core.Entity
	Damage component.Damage
}

// ContactPayload signals a damaging contact between two colliders
type ContactPayload struct {
	DamageEntity core.Entity // Carries ContactDamage and Damage
	HitEntity    core.Entity // Receives the damage
}

// AgentDiedPayload announces health reaching zero
type AgentDiedPayload struct {
	Entity core.Entity
}

// TriggerStatePayload reports trigger press state for a weapon owner
type TriggerStatePayload struct {
	Owner  core.Entity
	Active bool
}

// ItemEquipPayload hands a weapon entity to its new owner
type ItemEquipPayload struct {
	Weapon core.Entity
	Owner  core.Entity
}

// RewindRequestPayload starts history playback
type RewindRequestPayload struct {
	Entity core.Entity
	Frames uint32
	FPS    uint32
}

// SoundRequestPayload requests audio playback
type SoundRequestPayload struct {
	Sound  core.SoundType
	Source core.Entity // Optional emitter for time-scaled playback
}
