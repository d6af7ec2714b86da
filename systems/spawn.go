package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
)

// SpawnInitSystem boots the spawn pipeline for reserved entities
//
// A spawn-began event attaches the stage tracker and announces the
// first stage; the stage timer is armed by SpawnTransitionSystem when
// it consumes that announcement
type SpawnInitSystem struct {
	world *engine.World
	log   *zap.Logger

	spawning *engine.Store[component.SpawningComponent]
}

// NewSpawnInitSystem creates the spawn bootstrap system
func NewSpawnInitSystem(world *engine.World, log *zap.Logger) *SpawnInitSystem {
	return &SpawnInitSystem{
		world:    world,
		log:      log.Named("spawn"),
		spawning: engine.GetStore[component.SpawningComponent](world),
	}
}

// Priority returns the system's priority
func (s *SpawnInitSystem) Priority() int {
	return parameter.PrioritySpawnInit
}

// EventTypes returns the events this system consumes
func (s *SpawnInitSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSpawnBegan}
}

// HandleEvent attaches the stage tracker and announces the first stage
func (s *SpawnInitSystem) HandleEvent(world *engine.World, ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SpawnBeganPayload)
	if !ok {
		return
	}
	s.spawning.Add(p.Entity, component.SpawningComponent{
		Stage: component.StageIndicate,
		Timer: core.NewTimer(component.StageIndicate.Duration(), core.TimerOnce),
	})
	world.PushEvent(event.EventSpawnStageReached, &event.SpawnStagePayload{
		Entity: p.Entity,
		Stage:  component.StageIndicate,
	})
	s.log.Debug("spawn pipeline started", zap.Uint64("entity", uint64(p.Entity)))
}

// Update is a no-op; this system is event driven
func (s *SpawnInitSystem) Update(world *engine.World, dt time.Duration) {}

// SpawnTickSystem advances stage timers on simulation time
type SpawnTickSystem struct {
	world *engine.World

	spawning *engine.Store[component.SpawningComponent]
}

// NewSpawnTickSystem creates the stage timer system
func NewSpawnTickSystem(world *engine.World) *SpawnTickSystem {
	return &SpawnTickSystem{
		world:    world,
		spawning: engine.GetStore[component.SpawningComponent](world),
	}
}

// Priority returns the system's priority
func (s *SpawnTickSystem) Priority() int {
	return parameter.PrioritySpawnTick
}

// Update ticks every active stage timer
func (s *SpawnTickSystem) Update(world *engine.World, dt time.Duration) {
	physicsTime := engine.MustGetResource[*engine.PhysicsTimeResource](world.Resources)
	for _, e := range s.spawning.All() {
		sp, _ := s.spawning.Get(e)
		sp.Timer.Tick(physicsTime.DeltaTime)
		s.spawning.Add(e, sp)
	}
}

// SpawnTransitionSystem moves entities through the spawn stages
//
// On a finished timer the next stage is announced, or the pipeline
// completes and the tracker is removed. Stage announcements re-arm the
// timer for the announced stage's duration
type SpawnTransitionSystem struct {
	world *engine.World
	log   *zap.Logger

	spawning *engine.Store[component.SpawningComponent]
}

// NewSpawnTransitionSystem creates the stage handoff system
func NewSpawnTransitionSystem(world *engine.World, log *zap.Logger) *SpawnTransitionSystem {
	return &SpawnTransitionSystem{
		world:    world,
		log:      log.Named("spawn"),
		spawning: engine.GetStore[component.SpawningComponent](world),
	}
}

// Priority returns the system's priority
func (s *SpawnTransitionSystem) Priority() int {
	return parameter.PrioritySpawnTransition
}

// EventTypes returns the events this system consumes
func (s *SpawnTransitionSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSpawnStageReached}
}

// HandleEvent re-arms the stage timer for the announced stage
func (s *SpawnTransitionSystem) HandleEvent(world *engine.World, ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SpawnStagePayload)
	if !ok {
		return
	}
	sp, ok := s.spawning.Get(p.Entity)
	if !ok {
		return
	}
	sp.Stage = p.Stage
	sp.Timer.SetDuration(p.Stage.Duration())
	sp.Timer.Reset()
	s.spawning.Add(p.Entity, sp)
}

// Update transitions entities whose stage timer just finished
func (s *SpawnTransitionSystem) Update(world *engine.World, dt time.Duration) {
	for _, e := range s.spawning.All() {
		sp, _ := s.spawning.Get(e)
		if !sp.Timer.JustFinished() {
			continue
		}

		if next, ok := sp.Stage.Next(); ok {
			s.log.Debug("spawn stage reached",
				zap.Uint64("entity", uint64(e)),
				zap.Int("stage", int(next)))
			world.PushEvent(event.EventSpawnStageReached, &event.SpawnStagePayload{
				Entity: e,
				Stage:  next,
			})
		} else {
			s.log.Info("spawn complete", zap.Uint64("entity", uint64(e)))
			s.spawning.Remove(e)
			world.PushEvent(event.EventSpawnCompleted, &event.SpawnCompletedPayload{Entity: e})
		}
	}
}
