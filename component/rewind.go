package component

import (
	"github.com/lixenwraith/revenant/core"
)

// RewindComponent plays an entity's component history backwards
// FPS is history frames consumed per simulation tick
type RewindComponent struct {
	Frames uint32
	FPS    uint32
}

// OutOfHistory selects what happens when history is exhausted mid-rewind
type OutOfHistory int

const (
	// OutOfHistoryResume ends the rewind and resumes simulation
	OutOfHistoryResume OutOfHistory = iota

	// OutOfHistoryPause freezes the entity at its oldest recorded state
	OutOfHistoryPause

	// OutOfHistoryDespawn destroys the entity
	OutOfHistoryDespawn
)

// OutOfHistoryComponent overrides the default exhaustion policy
type OutOfHistoryComponent struct {
	Policy OutOfHistory
}

// TimeParentComponent links an entity into a time hierarchy
// Rewinds applied to an ancestor propagate to all time descendants
type TimeParentComponent struct {
	Parent core.Entity
}

// TimeChildrenComponent is the inverse side of the time hierarchy
type TimeChildrenComponent struct {
	Children map[core.Entity]struct{}
}
