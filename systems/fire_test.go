package systems

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/bt"
	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/vmath"
)

type fireHarness struct {
	world *engine.World
	queue *event.EventQueue
	frame atomic.Int64

	brains      *engine.Store[bt.Brain]
	trees       *engine.Store[component.TreeRefComponent]
	actions     *engine.Store[component.ActionComponent]
	transforms  *engine.Store[component.TransformComponent]
	kinds       *engine.Store[component.AgentKindComponent]
	targets     *engine.Store[component.AttackTargetComponent]
	contacts    *engine.Store[component.ContactDamageComponent]
	damages     *engine.Store[component.Damage]
	timeParents *engine.Store[component.TimeParentComponent]
	timeKids    *engine.Store[component.TimeChildrenComponent]
}

func newFireHarness(t *testing.T) *fireHarness {
	t.Helper()

	h := &fireHarness{
		world: engine.NewWorld(),
		queue: event.NewEventQueue(),
	}
	h.world.SetEventMetadata(h.queue, &h.frame)

	engine.AddResource(h.world.Resources, &engine.PhysicsTimeResource{
		Scale:     1.0,
		DeltaTime: 50 * time.Millisecond,
	})

	behavior := NewBehaviorSystem(h.world, zap.NewNop())
	h.world.AddSystem(behavior)
	NewFireActions(h.world, zap.NewNop()).Register(behavior)

	h.brains = engine.GetStore[bt.Brain](h.world)
	h.trees = engine.GetStore[component.TreeRefComponent](h.world)
	h.actions = engine.GetStore[component.ActionComponent](h.world)
	h.transforms = engine.GetStore[component.TransformComponent](h.world)
	h.kinds = engine.GetStore[component.AgentKindComponent](h.world)
	h.targets = engine.GetStore[component.AttackTargetComponent](h.world)
	h.contacts = engine.GetStore[component.ContactDamageComponent](h.world)
	h.damages = engine.GetStore[component.Damage](h.world)
	h.timeParents = engine.GetStore[component.TimeParentComponent](h.world)
	h.timeKids = engine.GetStore[component.TimeChildrenComponent](h.world)
	return h
}

func (h *fireHarness) tick() {
	h.world.Update(50 * time.Millisecond)
	h.frame.Add(1)
}

func TestFiredBulletRewindsWithShooter(t *testing.T) {
	h := newFireHarness(t)

	victim := h.world.CreateEntity()
	h.transforms.Add(victim, component.TransformComponent{Position: vmath.Vec3{X: 10}})

	shooter := h.world.CreateEntity()
	h.transforms.Add(shooter, component.TransformComponent{})
	h.kinds.Add(shooter, component.AgentKindComponent{Kind: component.KindDummy})
	h.targets.Add(shooter, component.AttackTargetComponent{Entity: victim})
	h.brains.Add(shooter, bt.Brain{})
	h.trees.Add(shooter, component.TreeRefComponent{Tree: bt.MustBuild(bt.Do(component.ActionFire))})
	h.actions.Add(shooter, component.ActionComponent{Kind: component.ActionEmpty})

	h.tick()

	var bullet core.Entity
	for _, e := range h.contacts.All() {
		bullet = e
	}
	if bullet == core.NoEntity {
		t.Fatal("Expected a bullet spawned")
	}

	parent, ok := h.timeParents.Get(bullet)
	if !ok || parent.Parent != shooter {
		t.Fatalf("Expected bullet time-parented to shooter, got %+v (ok=%v)", parent, ok)
	}
	kids, ok := h.timeKids.Get(shooter)
	if !ok {
		t.Fatal("Expected shooter to track time children")
	}
	if _, ok := kids.Children[bullet]; !ok {
		t.Error("Expected bullet in shooter's time children")
	}
	dmg, _ := h.damages.Get(bullet)
	if dmg.Source != shooter {
		t.Errorf("Expected damage source = shooter, got %v", dmg.Source)
	}
}
