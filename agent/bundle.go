package agent

import (
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

// kindFromName maps definition kind strings to archetype tags
// Validation upstream guarantees the name is known
func kindFromName(name string) component.AgentKind {
	switch name {
	case "boombox":
		return component.KindBoombox
	case "screamer":
		return component.KindScreamer
	default:
		return component.KindDummy
	}
}

// resistsFromSpec converts named resistances to typed ones, dropping
// unknown names
func resistsFromSpec(spec map[string]float64) map[component.DamageType]float64 {
	if len(spec) == 0 {
		return nil
	}
	out := make(map[component.DamageType]float64, len(spec))
	for name, v := range spec {
		switch name {
		case "ballistic":
			out[component.DamageBallistic] = v
		case "physical":
			out[component.DamagePhysical] = v
		}
	}
	return out
}

// pathFromSpec converts an approach spec; nil means the default beeline
func pathFromSpec(spec *core.PathSpec) component.PathBehaviorComponent {
	if spec == nil {
		return component.PathBehaviorComponent{
			Kind:     component.PathBeeline,
			Velocity: parameter.DefaultBeelineVelocity,
		}
	}

	path := component.PathBehaviorComponent{
		Velocity:         spec.Velocity,
		RadialVelocity:   spec.RadialVelocity,
		CircularVelocity: spec.CircularVelocity,
	}
	if spec.Kind == "strafe" {
		path.Kind = component.PathStrafe
	}
	if spec.CircularKind == "angular" {
		path.CircularKind = component.CircularAngular
	}
	return path
}

// walkFromSpec builds leg procs with feet planted at their anchors
func walkFromSpec(spec *core.WalkSpec, transform component.TransformComponent) component.WalkProcsComponent {
	procs := make([]component.WalkProc, 0, len(spec.Legs))
	for _, leg := range spec.Legs {
		home := vmath.Vec3{X: leg[0], Y: leg[1], Z: leg[2]}
		foot := vmath.V3Add(transform.Position, vmath.RotateY(home, transform.Yaw))
		procs = append(procs, component.WalkProc{
			Home:    home,
			Foot:    foot,
			FootYaw: transform.Yaw,
		})
	}
	return component.WalkProcsComponent{
		Procs:         procs,
		ScareDistance: spec.ScareDistance,
		StepDuration:  spec.StepDuration,
		StepHeight:    spec.StepHeight,
		Sound:         core.SoundStomp,
	}
}

// vec3 converts a definition triple
func vec3(v [3]float64) vmath.Vec3 {
	return vmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// cooldownFromSpec builds a repeating shot timer; zero means no gun
func cooldownFromSpec(d time.Duration) (component.ShotCooldownComponent, bool) {
	if d <= 0 {
		return component.ShotCooldownComponent{}, false
	}
	return component.ShotCooldownComponent{
		Timer: core.NewTimer(d, core.TimerRepeating),
	}, true
}
