package component

import (
	"time"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/parameter"
)

// SpawnStage is a phase of the enemy spawn pipeline
type SpawnStage int

const (
	// StageIndicate shows the warning indicator; no body, no behavior
	StageIndicate SpawnStage = iota

	// StageMaterialize spawns the body with a live hitbox, still inert
	StageMaterialize

	// StageFinish hands the entity to the behavior layer
	StageFinish
)

// Duration returns how long the stage lasts
func (s SpawnStage) Duration() time.Duration {
	switch s {
	case StageIndicate:
		return parameter.SpawnIndicateDuration
	case StageMaterialize:
		return parameter.SpawnMaterializeDuration
	default:
		return parameter.SpawnFinishDuration
	}
}

// Next returns the following stage, or false from the last one
func (s SpawnStage) Next() (SpawnStage, bool) {
	switch s {
	case StageIndicate:
		return StageMaterialize, true
	case StageMaterialize:
		return StageFinish, true
	default:
		return s, false
	}
}

// SpawningComponent tracks the current stage and its timer
type SpawningComponent struct {
	Stage SpawnStage
	Timer core.Timer
}
