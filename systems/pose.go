package systems

import (
	"github.com/lixenwraith/revenant/bt"
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// Pose clip names
const (
	ClipAim  = "pose.aim"
	ClipIdle = "pose.idle"
)

// PoseActions implements the body-state behavior leaves
//
// Halt brings the body to a dead stop, Aim and Idle switch the animator
// between the weapon-raised and resting poses with a short blend
type PoseActions struct {
	world *engine.World

	brains     *engine.Store[bt.Brain]
	velocities *engine.Store[component.VelocityComponent]
	agentVels  *engine.Store[component.AgentVelocityComponent]
	animators  *engine.Store[component.AnimatorComponent]
}

// NewPoseActions creates the pose leaves and caches their stores
func NewPoseActions(world *engine.World) *PoseActions {
	return &PoseActions{
		world:      world,
		brains:     engine.GetStore[bt.Brain](world),
		velocities: engine.GetStore[component.VelocityComponent](world),
		agentVels:  engine.GetStore[component.AgentVelocityComponent](world),
		animators:  engine.GetStore[component.AnimatorComponent](world),
	}
}

// Register binds the leaves into the behavior driver
func (a *PoseActions) Register(b *BehaviorSystem) {
	b.Register(component.ActionHalt, a.halt)
	b.Register(component.ActionAim, a.aim)
	b.Register(component.ActionIdle, a.idle)
}

// halt zeroes the body velocity
func (a *PoseActions) halt(world *engine.World, e core.Entity) {
	vel, _ := a.velocities.Get(e)
	vel.Linear = vmath.Vec3{}
	a.velocities.Add(e, vel)
	a.agentVels.Add(e, component.AgentVelocityComponent{})

	WriteVerdict(a.brains, e, bt.VerdictSuccess)
}

// aim blends into the weapon-raised pose
func (a *PoseActions) aim(world *engine.World, e core.Entity) {
	a.play(e, ClipAim)
}

// idle blends into the resting pose
func (a *PoseActions) idle(world *engine.World, e core.Entity) {
	a.play(e, ClipIdle)
}

// play switches the animator to a looping pose clip. Re-entering the
// active clip keeps its playhead
func (a *PoseActions) play(e core.Entity, clip string) {
	an, ok := a.animators.Get(e)
	if !ok || an.Player == nil {
		WriteVerdict(a.brains, e, bt.VerdictFailure)
		return
	}
	if an.Player.Current() != clip {
		an.Player.StartWithTransition(clip, parameter.PoseBlendDuration).Repeat()
	}
	WriteVerdict(a.brains, e, bt.VerdictSuccess)
}
