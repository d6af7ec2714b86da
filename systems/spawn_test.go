package systems

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
)

type spawnHarness struct {
	world  *engine.World
	queue  *event.EventQueue
	router *engine.EventRouter
	frame  atomic.Int64

	physTime *engine.PhysicsTimeResource
	spawning *engine.Store[component.SpawningComponent]
}

func newSpawnHarness(t *testing.T) *spawnHarness {
	t.Helper()

	h := &spawnHarness{
		world: engine.NewWorld(),
		queue: event.NewEventQueue(),
	}
	h.router = engine.NewEventRouter(h.queue)
	h.world.SetEventMetadata(h.queue, &h.frame)

	h.physTime = &engine.PhysicsTimeResource{Scale: 1.0}
	engine.AddResource(h.world.Resources, h.physTime)

	log := zap.NewNop()
	initSys := NewSpawnInitSystem(h.world, log)
	tickSys := NewSpawnTickSystem(h.world)
	transSys := NewSpawnTransitionSystem(h.world, log)

	h.world.AddSystem(initSys)
	h.world.AddSystem(tickSys)
	h.world.AddSystem(transSys)
	h.router.Register(initSys)
	h.router.Register(transSys)

	h.spawning = engine.GetStore[component.SpawningComponent](h.world)
	return h
}

func (h *spawnHarness) tick(dt time.Duration) {
	h.physTime.DeltaTime = dt
	h.router.DispatchAll(h.world)
	h.world.Update(dt)
	h.frame.Add(1)
}

// drainEvents returns the types pushed during the last tick, consuming them
func (h *spawnHarness) drainEvents() []event.EventType {
	pending := h.queue.Consume()
	types := make([]event.EventType, 0, len(pending))
	for _, ev := range pending {
		types = append(types, ev.Type)
		h.queue.Push(ev)
	}
	return types
}

func TestSpawnPipelineStages(t *testing.T) {
	h := newSpawnHarness(t)

	e := h.world.CreateEntity()
	h.world.PushEvent(event.EventSpawnBegan, &event.SpawnBeganPayload{Entity: e})
	h.tick(50 * time.Millisecond)

	sp, ok := h.spawning.Get(e)
	if !ok {
		t.Fatal("Expected spawn tracker attached")
	}
	if sp.Stage != component.StageIndicate {
		t.Errorf("Expected indicate stage, got %v", sp.Stage)
	}

	// Run out the indicate stage
	for elapsed := time.Duration(0); elapsed < parameter.SpawnIndicateDuration; elapsed += 100 * time.Millisecond {
		h.tick(100 * time.Millisecond)
	}
	h.tick(100 * time.Millisecond)

	sp, _ = h.spawning.Get(e)
	if sp.Stage != component.StageMaterialize {
		t.Errorf("Expected materialize stage after %v, got %v", parameter.SpawnIndicateDuration, sp.Stage)
	}

	for elapsed := time.Duration(0); elapsed < parameter.SpawnMaterializeDuration; elapsed += 100 * time.Millisecond {
		h.tick(100 * time.Millisecond)
	}
	h.tick(100 * time.Millisecond)

	// Finish has zero duration, so the next tick completes the pipeline
	h.tick(100 * time.Millisecond)
	h.tick(100 * time.Millisecond)

	if h.spawning.Has(e) {
		t.Error("Expected spawn tracker removed after completion")
	}
}

func TestSpawnPipelineEmitsCompletion(t *testing.T) {
	h := newSpawnHarness(t)

	e := h.world.CreateEntity()
	h.world.PushEvent(event.EventSpawnBegan, &event.SpawnBeganPayload{Entity: e})

	completed := false
	deadline := parameter.SpawnIndicateDuration + parameter.SpawnMaterializeDuration + time.Second
	for elapsed := time.Duration(0); elapsed < deadline; elapsed += 50 * time.Millisecond {
		h.physTime.DeltaTime = 50 * time.Millisecond
		h.router.DispatchAll(h.world)
		h.world.Update(50 * time.Millisecond)

		for _, ev := range h.queue.Consume() {
			if ev.Type == event.EventSpawnCompleted {
				p := ev.Payload.(*event.SpawnCompletedPayload)
				if p.Entity != e {
					t.Errorf("Completion for wrong entity: %d", p.Entity)
				}
				completed = true
			}
			h.queue.Push(ev)
		}
		if completed {
			break
		}
	}

	if !completed {
		t.Error("Pipeline never emitted completion")
	}
}

func TestSpawnPipelinePausedClock(t *testing.T) {
	h := newSpawnHarness(t)

	e := h.world.CreateEntity()
	h.world.PushEvent(event.EventSpawnBegan, &event.SpawnBeganPayload{Entity: e})
	h.tick(50 * time.Millisecond)

	// A paused simulation clock must not advance the stage timer
	for i := 0; i < 200; i++ {
		h.tick(0)
	}

	sp, ok := h.spawning.Get(e)
	if !ok || sp.Stage != component.StageIndicate {
		t.Errorf("Expected pipeline held at indicate, got %+v (present=%v)", sp, ok)
	}
}
