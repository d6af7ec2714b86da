package engine

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/event"
)

// System is an interface that all systems must implement
type System interface {
	Update(world *World, dt time.Duration)
	Priority() int // Lower values run first
}

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	// Global ResourceStore
	Resources *ResourceStore

	// Type-keyed component stores, created lazily by GetStore
	stores map[reflect.Type]AnyStore

	// Direct pointers for high-frequency path optimization
	eventQueue  *event.EventQueue
	frameSource *atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world with dynamic component store support
func NewWorld() *World {
	return &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Resources:    NewResourceStore(),
		stores:       make(map[reflect.Type]AnyStore),
		systems:      make([]System, 0),
	}
}

// GetStore returns the component store for type T, creating it on first use
// Systems call this once during construction and cache the pointer
func GetStore[T any](w *World) *Store[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()

	w.mu.RLock()
	s, ok := w.stores[t]
	w.mu.RUnlock()
	if ok {
		return s.(*Store[T])
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	store := NewStore[T]()
	w.stores[t] = store
	return store
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	return id
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// IsAlive reports whether the entity has been created and not destroyed
// An entity stays alive with zero components until destroyed
func (w *World) IsAlive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	delete(w.alive, e)
	w.mu.Unlock()

	w.mu.RLock()
	stores := make([]AnyStore, 0, len(w.stores))
	for _, s := range w.stores {
		stores = append(stores, s)
	}
	w.mu.RUnlock()

	for _, s := range stores {
		s.Remove(e)
	}
}

// HasAnyComponent checks if an entity has at least one component
func (w *World) HasAnyComponent(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, s := range w.stores {
		if s.Has(e) {
			return true
		}
	}
	return false
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	w.alive = make(map[core.Entity]struct{})
	for _, s := range w.stores {
		s.Clear()
	}
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems
// Used by the scheduler for event handler auto-registration
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems sequentially
func (w *World) Update(dt time.Duration) {
	w.RunSafe(func() {
		w.UpdateLocked(dt)
	})
}

// UpdateLocked runs all systems assuming the caller already holds the update lock
func (w *World) UpdateLocked(dt time.Duration) {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update(w, dt)
	}
}

// FrameNumber returns the current authoritative frame index
// Optimized for hot-path access by simulation and event loops
func (w *World) FrameNumber() int64 {
	if w.frameSource == nil {
		return 0
	}
	return w.frameSource.Load()
}

// SetEventMetadata wires the direct pointers for PushEvent optimization
// Called once during game context initialization
func (w *World) SetEventMetadata(q *event.EventQueue, f *atomic.Int64) {
	w.eventQueue = q
	w.frameSource = f
}

// PushEvent emits a game event using direct cached pointers
// This is the hot-path for all system communication
func (w *World) PushEvent(eventType event.EventType, payload any) {
	if w.eventQueue == nil || w.frameSource == nil {
		return // Not yet initialized
	}

	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frameSource.Load(),
	})
}
