package rewind

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/parameter"
)

type mockComponent struct {
	V uint32
}

type fixture struct {
	world   *engine.World
	tracker *Tracker[mockComponent]
	store   *engine.Store[mockComponent]
	rewinds *engine.Store[component.RewindComponent]
	frame   *FrameResource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	w := engine.NewWorld()
	frame := &FrameResource{}
	engine.AddResource(w.Resources, frame)

	sys := NewSystem(w, zap.NewNop())
	tracker := Track[mockComponent](sys)
	w.AddSystem(sys)
	w.AddSystem(NewFrameIndexSystem(w))

	return &fixture{
		world:   w,
		tracker: tracker,
		store:   engine.GetStore[mockComponent](w),
		rewinds: engine.GetStore[component.RewindComponent](w),
		frame:   frame,
	}
}

func (f *fixture) update() {
	f.world.Update(parameter.FrameUpdateInterval)
}

// mutate bumps the component like a running system would
func (f *fixture) mutate(e core.Entity) {
	if c, ok := f.store.Get(e); ok {
		c.V++
		f.store.Add(e, c)
	}
}

func (f *fixture) history(t *testing.T, e core.Entity) *History[mockComponent] {
	t.Helper()
	h, ok := f.tracker.HistoryOf(e)
	require.True(t, ok, "history missing for entity %d", e)
	return h
}

func TestHistoryRecording(t *testing.T) {
	f := newFixture(t)

	e := f.world.CreateEntity()
	f.store.Add(e, mockComponent{})

	f.update()

	// one component and timestamp after the first frame
	h := f.history(t, e)
	require.Equal(t, Timestamp{Frame: 0, Existent: true}, h.Frames[len(h.Frames)-1])
	require.Len(t, h.Components, 1)

	f.update()

	// unchanged component repeats the previous timestamp
	require.Equal(t, Timestamp{Frame: 0, Existent: true}, h.Frames[len(h.Frames)-1])

	f.mutate(e)
	f.update()

	// mutation stores an additional component with a new timestamp
	require.Equal(t, Timestamp{Frame: 2, Existent: true}, h.Frames[len(h.Frames)-1])
	require.Len(t, h.Components, 2)

	f.store.Remove(e)
	f.update()

	// removal records a nonexistent timestamp
	require.Equal(t, Timestamp{Frame: 3, Existent: false}, h.Frames[len(h.Frames)-1])

	f.update()

	// which then repeats
	require.Equal(t, Timestamp{Frame: 3, Existent: false}, h.Frames[len(h.Frames)-1])
}

func TestHistoryForget(t *testing.T) {
	f := newFixture(t)

	e := f.world.CreateEntity()
	f.store.Add(e, mockComponent{})

	f.mutate(e)
	f.update()
	f.mutate(e)
	f.update()

	f.store.Remove(e)
	for i := 0; i < parameter.MaxStorageFrames-2; i++ {
		f.update()
	}

	// at max capacity with two distinct components stored
	h := f.history(t, e)
	require.Equal(t, StorageGrowing, h.State)
	require.Len(t, h.Frames, parameter.MaxStorageFrames)
	require.Len(t, h.Components, 2)

	f.update()

	// one entry forgotten, storage now leaking
	require.Equal(t, StorageLeaking, h.State)
	require.Len(t, h.Frames, parameter.MaxStorageFrames)
	require.Len(t, h.Components, 1)
}

func TestHistoryCleanup(t *testing.T) {
	f := newFixture(t)

	e := f.world.CreateEntity()
	f.store.Add(e, mockComponent{})

	f.update()

	f.store.Remove(e)
	for i := 0; i < parameter.MaxStorageFrames-1; i++ {
		f.update()
	}

	// cold history survives until its last existent frame is forgotten
	_, ok := f.tracker.HistoryOf(e)
	require.True(t, ok)

	f.update()

	_, ok = f.tracker.HistoryOf(e)
	require.False(t, ok)

	// histories also drop when the entity despawns
	e = f.world.CreateEntity()
	f.store.Add(e, mockComponent{})

	f.update()

	_, ok = f.tracker.HistoryOf(e)
	require.True(t, ok)

	f.world.DestroyEntity(e)
	f.update()

	_, ok = f.tracker.HistoryOf(e)
	require.False(t, ok)
}

func TestRewindRoundTrip(t *testing.T) {
	f := newFixture(t)

	e := f.world.CreateEntity()
	f.store.Add(e, mockComponent{})
	f.update()
	f.store.Remove(e)
	f.update()
	f.store.Add(e, mockComponent{})
	f.update()
	f.update()
	f.mutate(e)
	f.update()
	// expected state: 3 components, frames [E0, N1, E2, E2, E4]

	h := f.history(t, e)
	require.Len(t, h.Components, 3)
	v, _ := f.store.Get(e)
	require.Equal(t, uint32(1), v.V)

	prevRendered := h.RenderedFrame
	f.rewinds.Add(e, component.RewindComponent{Frames: 5, FPS: 1})
	f.mutate(e)
	f.update()

	// initialization drops the live snapshot from storage
	require.Len(t, h.Components, 2)

	f.mutate(e)
	f.update()

	// restored the pre-mutation value even though a system kept writing
	require.Len(t, h.Components, 1)
	v, _ = f.store.Get(e)
	require.Equal(t, uint32(0), v.V)
	require.NotEqual(t, prevRendered, h.RenderedFrame)

	prevRendered = h.RenderedFrame
	f.update()

	// repeated timestamp steps back without re-applying state
	require.Len(t, h.Components, 1)
	require.Equal(t, prevRendered, h.RenderedFrame)

	f.update()

	// nonexistent timestamp removes the component
	require.False(t, f.store.Has(e))

	f.update()

	// final frame restores the oldest state and ends the rewind
	require.True(t, f.store.Has(e))
	require.False(t, f.rewinds.Has(e))
}

func TestOutOfHistory(t *testing.T) {
	f := newFixture(t)
	policies := engine.GetStore[component.OutOfHistoryComponent](f.world)

	e := f.world.CreateEntity()
	f.store.Add(e, mockComponent{})

	f.rewinds.Add(e, component.RewindComponent{Frames: 1, FPS: 1})
	policies.Add(e, component.OutOfHistoryComponent{Policy: component.OutOfHistoryResume})
	f.update()

	// resume removes the rewind once history is exhausted
	require.False(t, f.rewinds.Has(e))

	f.rewinds.Add(e, component.RewindComponent{Frames: 2, FPS: 1})
	policies.Add(e, component.OutOfHistoryComponent{Policy: component.OutOfHistoryPause})
	f.update()

	// pause keeps the rewind alive for its remaining frames
	require.True(t, f.rewinds.Has(e))

	f.update()

	f.rewinds.Add(e, component.RewindComponent{Frames: 5, FPS: 1})
	policies.Add(e, component.OutOfHistoryComponent{Policy: component.OutOfHistoryDespawn})
	f.update()
	f.update()

	require.False(t, f.world.IsAlive(e))
}

func TestRewindPropagatesToTimeChildren(t *testing.T) {
	f := newFixture(t)

	parent := f.world.CreateEntity()
	child := f.world.CreateEntity()
	grandchild := f.world.CreateEntity()
	f.store.Add(parent, mockComponent{})
	f.store.Add(child, mockComponent{})
	f.store.Add(grandchild, mockComponent{})

	SetTimeParent(f.world, child, parent)
	SetTimeParent(f.world, grandchild, child)

	for i := 0; i < 4; i++ {
		f.mutate(parent)
		f.mutate(child)
		f.mutate(grandchild)
		f.update()
	}

	f.rewinds.Add(parent, component.RewindComponent{Frames: 2, FPS: 1})
	f.update()

	// rewind copied down the time hierarchy
	require.True(t, f.rewinds.Has(child))
	require.True(t, f.rewinds.Has(grandchild))
}

func TestTimeDespawnDetachesFromParent(t *testing.T) {
	f := newFixture(t)
	children := engine.GetStore[component.TimeChildrenComponent](f.world)

	parent := f.world.CreateEntity()
	child := f.world.CreateEntity()
	SetTimeParent(f.world, child, parent)

	ch, _ := children.Get(parent)
	require.Contains(t, ch.Children, child)

	Despawn(f.world, child)

	ch, _ = children.Get(parent)
	require.NotContains(t, ch.Children, child)
	require.False(t, f.world.IsAlive(child))
}
