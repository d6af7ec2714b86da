package agent

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/bt"
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
)

// Spawner turns spawn requests into staged enemies
//
// A request reserves a bare entity with only a transform: the indicator.
// The materialize stage grows a body that can take damage but does
// nothing. Completion attaches the brain and hands the enemy to the
// behavior layer
type Spawner struct {
	world *engine.World
	log   *zap.Logger

	trees   map[string]*bt.Tree[component.ActionKind]
	pending map[core.Entity]string // Reserved entity -> definition name

	transforms *engine.Store[component.TransformComponent]
	scales     *engine.Store[component.TimeScaleComponent]
	health     *engine.Store[component.HealthComponent]
	resists    *engine.Store[component.ResistComponent]
	buffers    *engine.Store[component.DamageBufferComponent]
	hitboxes   *engine.Store[component.HitboxComponent]
	factions   *engine.Store[component.FactionComponent]
	kinds      *engine.Store[component.AgentKindComponent]
	velocities *engine.Store[component.VelocityComponent]
	rawVels    *engine.Store[component.RawVelocityComponent]
	brains     *engine.Store[bt.Brain]
	treeRefs   *engine.Store[component.TreeRefComponent]
	actions    *engine.Store[component.ActionComponent]
	agents     *engine.Store[component.AgentComponent]
	navTargets *engine.Store[component.AgentTargetComponent]
	desired    *engine.Store[component.AgentDesiredVelocityComponent]
	agentVels  *engine.Store[component.AgentVelocityComponent]
	paths      *engine.Store[component.PathBehaviorComponent]
	refs       *engine.Store[component.ArchipelagoRefComponent]
	hands      *engine.Store[component.HandsComponent]
	cooldowns  *engine.Store[component.ShotCooldownComponent]
	walks      *engine.Store[component.WalkProcsComponent]
}

// NewSpawner creates the spawn pipeline system
func NewSpawner(world *engine.World, log *zap.Logger) *Spawner {
	return &Spawner{
		world:   world,
		log:     log.Named("spawner"),
		trees:   Trees(),
		pending: make(map[core.Entity]string),

		transforms: engine.GetStore[component.TransformComponent](world),
		scales:     engine.GetStore[component.TimeScaleComponent](world),
		health:     engine.GetStore[component.HealthComponent](world),
		resists:    engine.GetStore[component.ResistComponent](world),
		buffers:    engine.GetStore[component.DamageBufferComponent](world),
		hitboxes:   engine.GetStore[component.HitboxComponent](world),
		factions:   engine.GetStore[component.FactionComponent](world),
		kinds:      engine.GetStore[component.AgentKindComponent](world),
		velocities: engine.GetStore[component.VelocityComponent](world),
		rawVels:    engine.GetStore[component.RawVelocityComponent](world),
		brains:     engine.GetStore[bt.Brain](world),
		treeRefs:   engine.GetStore[component.TreeRefComponent](world),
		actions:    engine.GetStore[component.ActionComponent](world),
		agents:     engine.GetStore[component.AgentComponent](world),
		navTargets: engine.GetStore[component.AgentTargetComponent](world),
		desired:    engine.GetStore[component.AgentDesiredVelocityComponent](world),
		agentVels:  engine.GetStore[component.AgentVelocityComponent](world),
		paths:      engine.GetStore[component.PathBehaviorComponent](world),
		refs:       engine.GetStore[component.ArchipelagoRefComponent](world),
		hands:      engine.GetStore[component.HandsComponent](world),
		cooldowns:  engine.GetStore[component.ShotCooldownComponent](world),
		walks:      engine.GetStore[component.WalkProcsComponent](world),
	}
}

// Priority returns the system's priority
func (s *Spawner) Priority() int {
	return parameter.PrioritySpawner
}

// EventTypes returns the events this system consumes
func (s *Spawner) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEnemySpawn,
		event.EventSpawnStageReached,
		event.EventSpawnCompleted,
	}
}

// HandleEvent advances the spawn pipeline
func (s *Spawner) HandleEvent(world *engine.World, ev event.GameEvent) {
	switch ev.Type {
	case event.EventEnemySpawn:
		if p, ok := ev.Payload.(*event.EnemySpawnPayload); ok {
			s.reserve(world, p)
		}
	case event.EventSpawnStageReached:
		if p, ok := ev.Payload.(*event.SpawnStagePayload); ok && p.Stage == component.StageMaterialize {
			s.materialize(world, p.Entity)
		}
	case event.EventSpawnCompleted:
		if p, ok := ev.Payload.(*event.SpawnCompletedPayload); ok {
			s.complete(world, p.Entity)
		}
	}
}

// Update prunes requests whose entity was destroyed mid-pipeline
func (s *Spawner) Update(world *engine.World, dt time.Duration) {
	for e := range s.pending {
		if !world.IsAlive(e) {
			delete(s.pending, e)
		}
	}
}

// reserve creates the indicator entity and kicks off the pipeline
func (s *Spawner) reserve(world *engine.World, p *event.EnemySpawnPayload) {
	def, ok := s.lookup(world, p.Kind)
	if !ok {
		s.log.Warn("spawn request for unknown agent", zap.String("kind", p.Kind))
		return
	}

	e := world.CreateEntity()
	s.transforms.Add(e, component.TransformComponent{
		Position: p.Position,
		Scale:    def.Radius * 2,
	})
	s.scales.Add(e, component.NewTimeScale())
	s.pending[e] = def.Name

	world.PushEvent(event.EventSpawnBegan, &event.SpawnBeganPayload{Entity: e})
	s.log.Info("enemy spawn reserved",
		zap.String("kind", def.Name), zap.Uint64("entity", uint64(e)))
}

// materialize grows the damageable body
func (s *Spawner) materialize(world *engine.World, e core.Entity) {
	def, ok := s.resolve(world, e)
	if !ok {
		return
	}

	s.health.Add(e, component.HealthComponent{Value: def.Health})
	if r := resistsFromSpec(def.Resists); r != nil {
		s.resists.Add(e, component.ResistComponent{Values: r})
	}
	s.buffers.Add(e, component.DamageBufferComponent{})
	s.hitboxes.Add(e, component.HitboxComponent{Owner: e})
	s.factions.Add(e, component.FactionComponent{Faction: component.FactionEnemy})
	s.kinds.Add(e, component.AgentKindComponent{Kind: kindFromName(def.Kind)})
	s.velocities.Add(e, component.VelocityComponent{})
	s.rawVels.Add(e, component.RawVelocityComponent{})

	world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{
		Sound:  core.SoundSpawn,
		Source: e,
	})
}

// complete attaches the decision layer and releases the enemy
func (s *Spawner) complete(world *engine.World, e core.Entity) {
	def, ok := s.resolve(world, e)
	if !ok {
		return
	}
	delete(s.pending, e)

	tree, ok := s.trees[def.Tree]
	if !ok {
		s.log.Warn("definition names unknown tree, enemy stays inert",
			zap.String("kind", def.Name), zap.String("tree", def.Tree))
		return
	}

	s.agents.Add(e, component.AgentComponent{
		Radius:      def.Radius,
		MaxVelocity: def.MaxVelocity,
	})
	s.paths.Add(e, pathFromSpec(def.Path))
	s.navTargets.Add(e, component.AgentTargetComponent{})
	s.desired.Add(e, component.AgentDesiredVelocityComponent{})
	s.agentVels.Add(e, component.AgentVelocityComponent{})
	s.refs.Add(e, component.ArchipelagoRefComponent{})
	s.hands.Add(e, component.HandsComponent{
		Dominant: vec3(def.Hand),
		Off:      vec3(def.OffHand),
	})

	if cd, armed := cooldownFromSpec(def.FireCooldown.Std()); armed {
		s.cooldowns.Add(e, cd)
	}
	if def.Walk != nil {
		transform, _ := s.transforms.Get(e)
		s.walks.Add(e, walkFromSpec(def.Walk, transform))
	}

	s.brains.Add(e, bt.Brain{})
	s.treeRefs.Add(e, component.TreeRefComponent{Tree: tree})
	s.actions.Add(e, component.ActionComponent{Kind: component.ActionEmpty})

	s.log.Info("enemy released",
		zap.String("kind", def.Name), zap.Uint64("entity", uint64(e)))
}

// resolve maps a pending entity back to its definition
func (s *Spawner) resolve(world *engine.World, e core.Entity) (core.AgentDefinition, bool) {
	name, ok := s.pending[e]
	if !ok {
		return core.AgentDefinition{}, false
	}
	return s.lookup(world, name)
}

// lookup fetches a definition from the current catalog snapshot
func (s *Spawner) lookup(world *engine.World, name string) (core.AgentDefinition, bool) {
	res, ok := engine.GetResource[*engine.ContentResource](world.Resources)
	if !ok || res.Provider == nil {
		return core.AgentDefinition{}, false
	}
	catalog := res.Provider.Catalog()
	if catalog == nil {
		return core.AgentDefinition{}, false
	}
	return catalog.Lookup(name)
}
