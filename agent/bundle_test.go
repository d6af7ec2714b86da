package agent

import (
	"testing"
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/parameter"
	"github.com/lixenwraith/revenant/vmath"
)

func TestKindFromName(t *testing.T) {
	if kindFromName("boombox") != component.KindBoombox {
		t.Error("boombox mapped wrong")
	}
	if kindFromName("screamer") != component.KindScreamer {
		t.Error("screamer mapped wrong")
	}
	if kindFromName("dummy") != component.KindDummy {
		t.Error("dummy mapped wrong")
	}
}

func TestResistsFromSpec(t *testing.T) {
	out := resistsFromSpec(map[string]float64{
		"ballistic": 0.25,
		"physical":  0.5,
		"arcane":    0.9, // Unknown names are dropped
	})
	if out[component.DamageBallistic] != 0.25 || out[component.DamagePhysical] != 0.5 {
		t.Errorf("Resist conversion wrong: %v", out)
	}
	if len(out) != 2 {
		t.Errorf("Expected unknown resist dropped, got %v", out)
	}
	if resistsFromSpec(nil) != nil {
		t.Error("Expected nil for empty spec")
	}
}

func TestPathFromSpecDefaults(t *testing.T) {
	path := pathFromSpec(nil)
	if path.Kind != component.PathBeeline || path.Velocity != parameter.DefaultBeelineVelocity {
		t.Errorf("Expected default beeline, got %+v", path)
	}
}

func TestPathFromSpecStrafe(t *testing.T) {
	path := pathFromSpec(&core.PathSpec{
		Kind:             "strafe",
		RadialVelocity:   1.0,
		CircularKind:     "angular",
		CircularVelocity: 0.4,
	})
	if path.Kind != component.PathStrafe {
		t.Errorf("Expected strafe, got %+v", path)
	}
	if path.CircularKind != component.CircularAngular || path.CircularVelocity != 0.4 {
		t.Errorf("Expected angular circular velocity, got %+v", path)
	}
}

func TestWalkFromSpecPlantsFeet(t *testing.T) {
	spec := &core.WalkSpec{
		Legs:          [][3]float64{{1, 0, 0}, {-1, 0, 0}},
		ScareDistance: 1.0,
		StepDuration:  0.1,
		StepHeight:    0.5,
	}
	transform := component.TransformComponent{Position: vmath.Vec3{X: 10, Z: 5}}

	walk := walkFromSpec(spec, transform)
	if len(walk.Procs) != 2 {
		t.Fatalf("Expected two legs, got %d", len(walk.Procs))
	}
	if walk.Procs[0].Foot.X != 11 || walk.Procs[0].Foot.Z != 5 {
		t.Errorf("Expected foot planted at world anchor, got %+v", walk.Procs[0].Foot)
	}
	if walk.Sound != core.SoundStomp {
		t.Errorf("Expected stomp sound, got %v", walk.Sound)
	}
	for _, proc := range walk.Procs {
		if proc.Step != nil {
			t.Error("Fresh legs must not be mid-step")
		}
	}
}

func TestCooldownFromSpec(t *testing.T) {
	if _, armed := cooldownFromSpec(0); armed {
		t.Error("Zero cooldown must mean unarmed")
	}
	cd, armed := cooldownFromSpec(2 * time.Second)
	if !armed {
		t.Fatal("Expected armed cooldown")
	}
	if cd.Timer.Duration != 2*time.Second || cd.Timer.Mode != core.TimerRepeating {
		t.Errorf("Expected repeating 2s timer, got %+v", cd.Timer)
	}
}

func TestTreesCatalog(t *testing.T) {
	trees := Trees()
	for _, name := range []string{"gunner", "walker"} {
		if trees[name] == nil {
			t.Errorf("Expected %q tree registered", name)
		}
	}
}
