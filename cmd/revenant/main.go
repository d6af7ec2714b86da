package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/agent"
	"github.com/lixenwraith/revenant/audio"
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/content"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/navigation"
	"github.com/lixenwraith/revenant/physics"
	"github.com/lixenwraith/revenant/rewind"
	"github.com/lixenwraith/revenant/service"
	"github.com/lixenwraith/revenant/status"
	"github.com/lixenwraith/revenant/systems"
	"github.com/lixenwraith/revenant/vmath"
)

var (
	configFlag   = flag.String("config", "", "Path to YAML config")
	dataFlag     = flag.String("data", "", "Agent definition directory (overrides config)")
	muteFlag     = flag.Bool("mute", true, "Start with audio muted")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal view")
	framesFlag   = flag.Int64("frames", 0, "Stop after N frames (headless only, 0 = forever)")
	debugFlag    = flag.Bool("debug", false, "Debug-level logging")
	logFlag      = flag.String("log", "revenant.log", "Log file path")
)

// runtime bundles everything the game loop needs
type runtime struct {
	log      *zap.Logger
	cfg      *Config
	world    *engine.World
	router   *engine.EventRouter
	island   *navigation.Archipelago
	timeRes  *engine.TimeResource
	physTime *engine.PhysicsTimeResource
	frame    atomic.Int64
	spawns   []SpawnEntry
	muted    bool
	metrics  *status.Registry
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "revenant: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := LoadConfig(*configFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *dataFlag != "" {
		cfg.Game.DataDir = *dataFlag
	}

	rt, mgr, err := buildRuntime(logger, cfg)
	if err != nil {
		return err
	}
	defer mgr.StopAll()
	defer rt.logMetrics()

	if *headlessFlag {
		return rt.runHeadless(*framesFlag)
	}
	return rt.runInteractive()
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if *debugFlag {
		zcfg = zap.NewDevelopmentConfig()
	}
	// The terminal view owns stderr; logs go to a file
	zcfg.OutputPaths = []string{*logFlag}
	zcfg.ErrorOutputPaths = []string{*logFlag}
	return zcfg.Build()
}

// buildRuntime wires the world: resources, services, systems, handlers
func buildRuntime(logger *zap.Logger, cfg *Config) (*runtime, *service.Manager, error) {
	world := engine.NewWorld()
	queue := event.NewEventQueue()
	router := engine.NewEventRouter(queue)

	rt := &runtime{
		log:     logger,
		cfg:     cfg,
		world:   world,
		router:  router,
		spawns:  append([]SpawnEntry(nil), cfg.Spawns...),
		muted:   cfg.Audio.Muted || *muteFlag,
		metrics: status.NewRegistry(),
	}
	world.SetEventMetadata(queue, &rt.frame)

	// Core resources
	rt.timeRes = &engine.TimeResource{}
	engine.AddResource(world.Resources, rt.timeRes)

	rt.physTime = &engine.PhysicsTimeResource{
		Scale:    1.0,
		MaxDelta: time.Duration(cfg.Game.MaxDeltaMs) * time.Millisecond,
	}
	engine.AddResource(world.Resources, rt.physTime)

	engine.AddResource(world.Resources, &rewind.FrameResource{})

	rt.island = buildIsland(cfg.Island)
	registry := navigation.NewRegistry()
	registry.Add(rt.island)
	engine.AddResource(world.Resources, registry)

	// Services
	mgr := service.NewManager(logger)
	if err := mgr.Add(content.NewService(logger)); err != nil {
		return nil, nil, err
	}
	if err := mgr.Add(audio.NewService()); err != nil {
		return nil, nil, err
	}
	if err := mgr.InitAll(map[string][]any{
		"content": {cfg.Game.DataDir},
		"audio":   {rt.muted},
	}); err != nil {
		return nil, nil, err
	}
	if err := mgr.StartAll(); err != nil {
		return nil, nil, err
	}
	mgr.ContributeAll(func(res any) {
		switch r := res.(type) {
		case *engine.ContentResource:
			engine.AddResource(world.Resources, r)
		case *engine.AudioResource:
			engine.AddResource(world.Resources, r)
		default:
			logger.Warn("unroutable contributed resource")
		}
	})

	// Systems; event consumers also register with the router
	addSystem := func(s engine.System) {
		world.AddSystem(s)
		if h, ok := s.(engine.EventHandler); ok {
			router.Register(h)
		}
	}

	addSystem(agent.NewSpawner(world, logger))
	addSystem(systems.NewSpawnInitSystem(world, logger))
	addSystem(systems.NewSpawnTickSystem(world))
	addSystem(systems.NewSpawnTransitionSystem(world, logger))
	addSystem(systems.NewNavigationSystem(world, logger))

	behavior := systems.NewBehaviorSystem(world, logger)
	systems.NewTargetingActions(world, logger).Register(behavior)
	systems.NewFireActions(world, logger).Register(behavior)
	systems.NewPoseActions(world).Register(behavior)
	addSystem(behavior)

	addSystem(systems.NewLocomotionSystem(world))
	addSystem(systems.NewWalkSystem(world))
	addSystem(systems.NewForceSystem(world))
	addSystem(physics.NewSystem(world, logger))
	addSystem(systems.NewDamageSystem(world, logger))
	addSystem(systems.NewDeathSystem(world, logger))
	addSystem(systems.NewMeleeSystem(world, logger))

	rewindSys := rewind.NewSystem(world, logger)
	rewind.Track[component.TransformComponent](rewindSys)
	rewind.Track[component.VelocityComponent](rewindSys)
	rewind.Track[component.RawVelocityComponent](rewindSys)
	rewind.Track[component.HealthComponent](rewindSys)
	rewind.Track[component.DeadComponent](rewindSys)
	rewind.Track[component.ActionComponent](rewindSys)
	addSystem(rewindSys)
	addSystem(rewind.NewFrameIndexSystem(world))

	addSystem(systems.NewTimeScaleSystem(world))
	addSystem(systems.NewAnimationSystem(world))
	addSystem(systems.NewAudioSystem(world, logger))

	rt.spawnLure()

	return rt, mgr, nil
}

// spawnLure plants a player-faction practice target so enemies have
// something to track, steer at and shoot
func (rt *runtime) spawnLure() {
	pos := rt.island.CellToWorld(navigation.Cell{
		X: rt.island.Width / 4,
		Y: rt.island.Height / 2,
	})

	e := rt.world.CreateEntity()
	engine.GetStore[component.TransformComponent](rt.world).Add(e, component.TransformComponent{
		Position: pos,
		Scale:    1.0,
	})
	engine.GetStore[component.FactionComponent](rt.world).Add(e, component.FactionComponent{
		Faction: component.FactionPlayer,
	})
	engine.GetStore[component.HealthComponent](rt.world).Add(e, component.HealthComponent{Value: 100})
	engine.GetStore[component.TimeScaleComponent](rt.world).Add(e, component.NewTimeScale())

	rt.log.Info("lure placed", zap.Float64("x", pos.X), zap.Float64("z", pos.Z))
}

// buildIsland raises walls from config on the demo island
func buildIsland(cfg IslandConfig) *navigation.Archipelago {
	island := navigation.NewArchipelago(0, vmath.Vec3{},
		cfg.CellSize, cfg.Width, cfg.Height, cfg.MinFlowTicks, cfg.DirtyDistance)

	if cfg.Maze {
		navigation.CarveWalls(island, navigation.LayoutConfig{
			Braiding:    cfg.MazeBraiding,
			OpenBorders: !cfg.Border,
			Seed:        cfg.MazeSeed,
		})
		return island
	}

	if cfg.Border {
		for x := 0; x < cfg.Width; x++ {
			island.SetWall(x, 0, true)
			island.SetWall(x, cfg.Height-1, true)
		}
		for y := 0; y < cfg.Height; y++ {
			island.SetWall(0, y, true)
			island.SetWall(cfg.Width-1, y, true)
		}
	}
	for _, w := range cfg.Walls {
		island.SetWall(w[0], w[1], true)
	}
	return island
}

// tick advances the simulation one frame
func (rt *runtime) tick(now time.Time, dt time.Duration) {
	frame := rt.frame.Load()

	rt.timeRes.Update(now, dt, frame)
	rt.physTime.Advance(dt)

	rt.fireScheduledSpawns(frame)

	rt.router.DispatchAll(rt.world)
	rt.world.Update(dt)

	rt.frame.Store(frame + 1)

	rt.metrics.Ints.Get("sim.frame").Store(frame + 1)
	rt.metrics.Ints.Get("sim.entities").Store(int64(rt.world.EntityCount()))
	rt.metrics.Floats.Get("sim.scale").Set(rt.physTime.Scale)
	rt.metrics.Bools.Get("audio.muted").Store(rt.muted)
}

// logMetrics dumps the metric registry, called on shutdown
func (rt *runtime) logMetrics() {
	fields := make([]zap.Field, 0, rt.metrics.TotalCount())
	rt.metrics.Ints.Range(func(key string, ptr *atomic.Int64) {
		fields = append(fields, zap.Int64(key, ptr.Load()))
	})
	rt.metrics.Floats.Range(func(key string, ptr *status.AtomicFloat) {
		fields = append(fields, zap.Float64(key, ptr.Get()))
	})
	rt.metrics.Bools.Range(func(key string, ptr *atomic.Bool) {
		fields = append(fields, zap.Bool(key, ptr.Load()))
	})
	rt.log.Info("final metrics", fields...)
}

// fireScheduledSpawns pushes config spawns whose frame has come
func (rt *runtime) fireScheduledSpawns(frame int64) {
	kept := rt.spawns[:0]
	for _, entry := range rt.spawns {
		if entry.AtFrame > frame {
			kept = append(kept, entry)
			continue
		}
		rt.world.PushEvent(event.EventEnemySpawn, &event.EnemySpawnPayload{
			Kind:     entry.Kind,
			Position: vmath.Vec3{X: entry.X, Z: entry.Z},
		})
	}
	rt.spawns = kept
}

// runHeadless steps the simulation on a fixed ticker with no view
func (rt *runtime) runHeadless(maxFrames int64) error {
	tickDur := time.Duration(rt.cfg.Game.TickMs) * time.Millisecond
	ticker := time.NewTicker(tickDur)
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		rt.tick(now, now.Sub(last))
		last = now

		if maxFrames > 0 && rt.frame.Load() >= maxFrames {
			rt.log.Info("frame budget reached", zap.Int64("frames", maxFrames))
			return nil
		}
	}
	return nil
}

// runInteractive steps the simulation and draws the terminal view
func (rt *runtime) runInteractive() error {
	view, err := NewView(rt.world)
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer view.Close()

	// Terminal must be restored before a panic reaches the console
	defer func() {
		if r := recover(); r != nil {
			view.Close()
			fmt.Fprintf(os.Stderr, "\ncrashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	events := view.Events()
	tickDur := time.Duration(rt.cfg.Game.TickMs) * time.Millisecond
	ticker := time.NewTicker(tickDur)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			rt.tick(now, now.Sub(last))
			last = now
			view.Render(rt.island, rt.frame.Load(), rt.physTime.Scale, rt.muted)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := rt.handleInput(ev, view); quit {
				return nil
			}
		}
	}
}

// handleInput maps terminal keys to simulation controls
func (rt *runtime) handleInput(ev tcell.Event, view *View) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		view.Sync()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			return true
		}
		switch ev.Rune() {
		case '1':
			rt.requestSpawn("dummy")
		case '2':
			rt.requestSpawn("boombox")
		case '3':
			rt.requestSpawn("screamer")
		case 't':
			if rt.physTime.Scale == 1.0 {
				rt.physTime.Scale = 0.25
			} else {
				rt.physTime.Scale = 1.0
			}
		case 'r':
			rt.requestRewind()
		case 'm':
			if res, ok := engine.GetResource[*engine.AudioResource](rt.world.Resources); ok && res.Player != nil {
				rt.muted = res.Player.ToggleMute()
			}
		}
	}
	return false
}

// requestRewind plays every agent back two seconds; time children
// (their bullets) follow through the hierarchy
func (rt *runtime) requestRewind() {
	frames := uint32(2000 / rt.cfg.Game.TickMs)
	agents := engine.GetStore[component.AgentComponent](rt.world)
	for _, e := range agents.All() {
		rt.world.PushEvent(event.EventRewindRequest, &event.RewindRequestPayload{
			Entity: e,
			Frames: frames,
		})
	}
	rt.log.Info("rewind requested", zap.Int("agents", agents.Count()), zap.Uint32("frames", frames))
}

// requestSpawn drops an enemy near the island center
func (rt *runtime) requestSpawn(kind string) {
	center := rt.island.CellToWorld(navigation.Cell{
		X: rt.island.Width / 2,
		Y: rt.island.Height / 2,
	})
	rt.world.PushEvent(event.EventEnemySpawn, &event.EnemySpawnPayload{
		Kind:     kind,
		Position: center,
	})
	rt.log.Info("manual spawn requested", zap.String("kind", kind))
}
