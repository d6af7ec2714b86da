package systems

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/vmath"
)

type walkHarness struct {
	world *engine.World
	queue *event.EventQueue
	frame atomic.Int64

	sys      *WalkSystem
	physTime *engine.PhysicsTimeResource

	walks      *engine.Store[component.WalkProcsComponent]
	transforms *engine.Store[component.TransformComponent]
	velocities *engine.Store[component.VelocityComponent]
}

func newWalkHarness(t *testing.T) *walkHarness {
	t.Helper()

	h := &walkHarness{
		world: engine.NewWorld(),
		queue: event.NewEventQueue(),
	}
	h.world.SetEventMetadata(h.queue, &h.frame)

	h.physTime = &engine.PhysicsTimeResource{Scale: 1.0}
	engine.AddResource(h.world.Resources, h.physTime)

	h.sys = NewWalkSystem(h.world)
	h.world.AddSystem(h.sys)

	h.walks = engine.GetStore[component.WalkProcsComponent](h.world)
	h.transforms = engine.GetStore[component.TransformComponent](h.world)
	h.velocities = engine.GetStore[component.VelocityComponent](h.world)
	return h
}

func (h *walkHarness) tick(dt time.Duration) {
	h.physTime.DeltaTime = dt
	h.world.Update(dt)
	h.frame.Add(1)
}

// newWalker plants both feet at their world anchors so no step is due
func (h *walkHarness) newWalker() core.Entity {
	e := h.world.CreateEntity()
	h.transforms.Add(e, component.TransformComponent{Scale: 1.0})
	h.walks.Add(e, component.WalkProcsComponent{
		Procs: []component.WalkProc{
			{Home: vmath.Vec3{X: 1}, Foot: vmath.Vec3{X: 1}},
			{Home: vmath.Vec3{X: -1}, Foot: vmath.Vec3{X: -1}},
		},
		ScareDistance: 1.0,
		StepDuration:  0.1,
		StepHeight:    0.5,
		Sound:         core.SoundStomp,
	})
	return e
}

func TestWalkIdleWhenFeetInRange(t *testing.T) {
	h := newWalkHarness(t)
	e := h.newWalker()

	for i := 0; i < 10; i++ {
		h.tick(50 * time.Millisecond)
	}

	walk, _ := h.walks.Get(e)
	for i, proc := range walk.Procs {
		if proc.Step != nil {
			t.Errorf("Leg %d stepping while every foot is home", i)
		}
	}
	if walk.ActiveProc != 0 {
		t.Errorf("Round-robin advanced without a step: %d", walk.ActiveProc)
	}
}

func TestWalkStepsWhenBodyMoves(t *testing.T) {
	h := newWalkHarness(t)
	e := h.newWalker()

	// Move the body so the planted feet fall out of scare range
	tf, _ := h.transforms.Get(e)
	tf.Position = vmath.Vec3{Z: 2.0}
	h.transforms.Add(e, tf)

	h.tick(50 * time.Millisecond)

	walk, _ := h.walks.Get(e)
	if walk.Procs[0].Step == nil {
		t.Fatal("Expected first leg to begin a step")
	}
	if walk.ActiveProc != 1 {
		t.Errorf("Expected round-robin to advance to leg 1, got %d", walk.ActiveProc)
	}

	// Step duration 0.1s at 50ms per tick finishes on the second advance
	h.tick(50 * time.Millisecond)
	h.tick(50 * time.Millisecond)

	walk, _ = h.walks.Get(e)
	if walk.Procs[0].Step != nil {
		t.Error("Expected first step finished")
	}
	foot := walk.Procs[0].Foot
	want := vmath.Vec3{X: 1, Z: 2}
	if vmath.V3Distance(foot, want) > 1e-6 {
		t.Errorf("Expected foot landed at %+v, got %+v", want, foot)
	}

	stomps := 0
	for _, ev := range h.queue.Consume() {
		if ev.Type == event.EventSoundRequest {
			p := ev.Payload.(*event.SoundRequestPayload)
			if p.Sound == core.SoundStomp && p.Source == e {
				stomps++
			}
		}
	}
	if stomps == 0 {
		t.Error("Expected a stomp sound when the step landed")
	}
}

func TestWalkRoundRobinStepsRemainingLeg(t *testing.T) {
	h := newWalkHarness(t)
	e := h.newWalker()

	tf, _ := h.transforms.Get(e)
	tf.Position = vmath.Vec3{Z: 2.0}
	h.transforms.Add(e, tf)

	// Enough ticks for both legs to step home, one after the other
	for i := 0; i < 8; i++ {
		h.tick(50 * time.Millisecond)
	}

	walk, _ := h.walks.Get(e)
	for i, proc := range walk.Procs {
		home := vmath.V3Add(tf.Position, proc.Home)
		if vmath.V3Distance(proc.Foot, home) > walk.ScareDistance {
			t.Errorf("Leg %d still out of range after settling: foot %+v", i, proc.Foot)
		}
	}
}

func TestWalkStepArcLifts(t *testing.T) {
	h := newWalkHarness(t)
	e := h.newWalker()

	tf, _ := h.transforms.Get(e)
	tf.Position = vmath.Vec3{Z: 2.0}
	h.transforms.Add(e, tf)

	h.tick(50 * time.Millisecond)
	h.tick(50 * time.Millisecond) // Mid-step at T=0.5

	walk, _ := h.walks.Get(e)
	if walk.Procs[0].Step == nil {
		t.Fatal("Expected step still in flight at half duration")
	}
	if walk.Procs[0].Foot.Y <= 0 {
		t.Errorf("Expected foot lifted mid-step, got Y=%v", walk.Procs[0].Foot.Y)
	}
}

func TestWalkPredictsLandingUnderVelocity(t *testing.T) {
	h := newWalkHarness(t)
	e := h.newWalker()

	tf, _ := h.transforms.Get(e)
	tf.Position = vmath.Vec3{Z: 2.0}
	h.transforms.Add(e, tf)
	h.velocities.Add(e, component.VelocityComponent{Linear: vmath.Vec3{Z: 10}})

	h.tick(50 * time.Millisecond)

	walk, _ := h.walks.Get(e)
	st := walk.Procs[0].Step
	if st == nil {
		t.Fatal("Expected a step in flight")
	}

	// Landing is predicted one step duration ahead: home plus v*0.1s
	landing := st.Curve.Position(1.0)
	want := vmath.Vec3{X: 1, Z: 3}
	if vmath.V3Distance(landing, want) > 1e-6 {
		t.Errorf("Expected predicted landing %+v, got %+v", want, landing)
	}
}

func TestWalkFrozenAtZeroScale(t *testing.T) {
	h := newWalkHarness(t)
	e := h.newWalker()

	scales := engine.GetStore[component.TimeScaleComponent](h.world)
	ts := component.NewTimeScale()
	ts.ScaleBy(0.0)
	scales.Add(e, ts)

	tf, _ := h.transforms.Get(e)
	tf.Position = vmath.Vec3{Z: 2.0}
	h.transforms.Add(e, tf)

	h.tick(50 * time.Millisecond)

	walk, _ := h.walks.Get(e)
	if walk.Procs[0].Step == nil {
		t.Fatal("Expected step scheduled even at zero scale")
	}
	startT := walk.Procs[0].Step.T

	for i := 0; i < 5; i++ {
		h.tick(50 * time.Millisecond)
	}

	walk, _ = h.walks.Get(e)
	if walk.Procs[0].Step == nil {
		t.Fatal("Step finished while frozen")
	}
	if math.Abs(walk.Procs[0].Step.T-startT) > 1e-9 {
		t.Errorf("Step progressed at zero scale: %v", walk.Procs[0].Step.T)
	}
}
