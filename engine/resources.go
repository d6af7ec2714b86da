package engine

import (
	"reflect"
	"sync"
	"time"

	"github.com/lixenwraith/revenant/core"
)

// ResourceStore is a thread-safe container for global game resources
// It allows systems to access shared data (Time, Audio, Config) without
// coupling to the game context
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or updates a resource in the store
// T should be the pointer type of the resource struct so systems can mutate it
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	t := reflect.TypeOf(resource)
	rs.resources[t] = resource
}

// GetResource retrieves a resource of type T from the store
// Returns the zero value of T and false if not found
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	var target T
	t := reflect.TypeOf(target)

	val, ok := rs.resources[t]
	if !ok {
		return target, false
	}

	return val.(T), true
}

// MustGetResource retrieves a resource or panics if missing
// Useful for core resources (Time, Physics) that must exist
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		var target T
		panic("Required resource not found: " + reflect.TypeOf(target).String())
	}
	return res
}

// --- Core Resources ---

// TimeResource wraps wall-clock time data for systems
// It is updated by the game loop at the start of a frame
type TimeResource struct {
	// RealTime is the wall-clock time (unaffected by pause or scaling)
	RealTime time.Time

	// DeltaTime is the wall-clock duration since the last update
	DeltaTime time.Duration

	// FrameNumber is the current frame count
	FrameNumber int64
}

// Update modifies TimeResource fields in-place (zero allocation)
// Must be called under world lock to prevent races with systems reads
func (tr *TimeResource) Update(realTime time.Time, deltaTime time.Duration, frameNumber int64) {
	tr.RealTime = realTime
	tr.DeltaTime = deltaTime
	tr.FrameNumber = frameNumber
}

// PhysicsTimeResource is the simulation clock, decoupled from wall time
// Delta is clamped so a stalled frame cannot step the simulation too far,
// and the global scale slows or pauses the whole simulation
type PhysicsTimeResource struct {
	// Elapsed is total simulation time advanced so far
	Elapsed time.Duration

	// DeltaTime is the simulation delta for the current frame
	DeltaTime time.Duration

	// Scale is the global simulation rate (1.0 = real time, 0 = paused)
	Scale float64

	// MaxDelta clamps a single frame's simulation step
	MaxDelta time.Duration
}

// Advance computes the simulation delta from a wall-clock delta
func (pt *PhysicsTimeResource) Advance(wallDelta time.Duration) {
	dt := time.Duration(float64(wallDelta) * pt.Scale)
	if pt.MaxDelta > 0 && dt > pt.MaxDelta {
		dt = pt.MaxDelta
	}
	pt.DeltaTime = dt
	pt.Elapsed += dt
}

// --- Bridged Resources ---

// ContentProvider defines the interface for definition catalog access
// Matches content.Service public API
type ContentProvider interface {
	Catalog() *core.AgentCatalog
}

// ContentResource wraps a ContentProvider for the ResourceStore
type ContentResource struct {
	Provider ContentProvider
}

// AudioPlayer defines the minimal audio interface used by game systems
type AudioPlayer interface {
	Play(core.SoundType) bool
	PlayFrom(e core.Entity, sound core.SoundType) bool
	SetSpeed(e core.Entity, speed float64)
	ToggleMute() bool
	IsMuted() bool
	IsRunning() bool
}

// AudioResource wraps the audio player interface
type AudioResource struct {
	Player AudioPlayer
}
