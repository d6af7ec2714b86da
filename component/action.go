package component

import (
	"github.com/lixenwraith/revenant/bt"
)

// ActionKind is the leaf action vocabulary shared by enemy trees
type ActionKind int

const (
	// ActionEmpty is the idle no-op, assigned while no leaf is active
	ActionEmpty ActionKind = iota

	// ActionTrack acquires the closest attack target
	ActionTrack

	// ActionTarget converts the attack target into a steering target
	ActionTarget

	// ActionFireCheck gates firing on the shot cooldown
	ActionFireCheck

	// ActionFire discharges the agent's weapon
	ActionFire

	// ActionChase keeps pursuing while the cooldown runs
	ActionChase

	// ActionFireWait blocks on the shot cooldown instead of failing,
	// holding its branch until the cooldown completes
	ActionFireWait

	// ActionHalt zeroes the body velocity
	ActionHalt

	// ActionAim raises the weapon pose
	ActionAim

	// ActionIdle returns to the resting pose
	ActionIdle
)

// ActionComponent is the active leaf action slot for an agent
type ActionComponent struct {
	Kind ActionKind
	Node int // Tree node the action came from
}

// ActiveTreeComponent marks an agent whose tree still needs stepping
// this frame; the behavior driver loops until none remain
type ActiveTreeComponent struct{}

// TreeRefComponent binds an agent to its shared behavior tree
type TreeRefComponent struct {
	Tree *bt.Tree[ActionKind]
}
