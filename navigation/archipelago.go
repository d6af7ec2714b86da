package navigation

import (
	"math"

	"github.com/lixenwraith/revenant/vmath"
)

// Archipelago is one navigable island of the ground plane
//
// World positions map onto a uniform grid; a shared flow field steers
// every agent on the island toward the nearest registered quarry. Wide
// agents consult a footprint passability grid so they never pick
// directions their body cannot follow
type Archipelago struct {
	ID       int
	Origin   vmath.Vec3 // World position of cell (0,0) corner
	CellSize float64
	Width    int
	Height   int

	walls []bool
	Cache *FlowFieldCache

	// Per-footprint passability, keyed by radius in cells
	footprints map[int]*FootprintPassability
}

// NewArchipelago creates an island with an empty wall grid
func NewArchipelago(id int, origin vmath.Vec3, cellSize float64, width, height, minTicks, dirtyDist int) *Archipelago {
	return &Archipelago{
		ID:         id,
		Origin:     origin,
		CellSize:   cellSize,
		Width:      width,
		Height:     height,
		walls:      make([]bool, width*height),
		Cache:      NewFlowFieldCache(width, height, minTicks, dirtyDist),
		footprints: make(map[int]*FootprintPassability),
	}
}

// SetWall marks a cell blocked or free and invalidates derived data
func (a *Archipelago) SetWall(x, y int, blocked bool) {
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return
	}
	a.walls[y*a.Width+x] = blocked
	a.Cache.MarkDirty()
	for _, fp := range a.footprints {
		fp.Stale = true
	}
}

// Blocked reports whether a cell blocks navigation
// Out-of-bounds cells are blocked
func (a *Archipelago) Blocked(x, y int) bool {
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return true
	}
	return a.walls[y*a.Width+x]
}

// BlockedFor returns a wall checker for an agent of the given world radius
// Radii within one cell use the raw wall grid
func (a *Archipelago) BlockedFor(radius float64) WallChecker {
	cells := int(math.Ceil(radius/a.CellSize)) - 1
	if cells <= 0 {
		return a.Blocked
	}
	fp, ok := a.footprints[cells]
	if !ok {
		fp = NewFootprintPassability(a.Width, a.Height, cells)
		a.footprints[cells] = fp
	}
	if fp.Stale {
		fp.Compute(a.Blocked)
	}
	return fp.IsBlocked
}

// WorldToCell maps a world position onto the island grid
func (a *Archipelago) WorldToCell(p vmath.Vec3) Cell {
	return Cell{
		X: int(math.Floor((p.X - a.Origin.X) / a.CellSize)),
		Y: int(math.Floor((p.Z - a.Origin.Z) / a.CellSize)),
	}
}

// CellToWorld maps a grid cell to the world position of its center
func (a *Archipelago) CellToWorld(c Cell) vmath.Vec3 {
	return vmath.Vec3{
		X: a.Origin.X + (float64(c.X)+0.5)*a.CellSize,
		Z: a.Origin.Z + (float64(c.Y)+0.5)*a.CellSize,
	}
}

// Update recomputes the shared flow field for the current quarry set
func (a *Archipelago) Update(targets []vmath.Vec3) {
	cells := make([]Cell, 0, len(targets))
	for _, t := range targets {
		cells = append(cells, a.WorldToCell(t))
	}
	a.Cache.Update(cells, a.Blocked)
}

// Steer returns a unit direction from pos toward target
//
// The flow field wins when it has a direction for the agent's cell so
// walls are routed around; otherwise steering degrades to the direct
// flattened bearing
func (a *Archipelago) Steer(pos, target vmath.Vec3, radius float64) vmath.Vec3 {
	c := a.WorldToCell(pos)
	dir := a.Cache.GetDirection(c.X, c.Y)
	if dir >= 0 && dir < DirCount {
		blocked := a.BlockedFor(radius)
		if !blocked(c.X+DirVectors[dir][0], c.Y+DirVectors[dir][1]) {
			v := vmath.Vec3{
				X: float64(DirVectors[dir][0]),
				Z: float64(DirVectors[dir][1]),
			}
			return vmath.V3Normalize(v)
		}
	}
	return vmath.V3Normalize(vmath.V3XZFlat(vmath.V3Sub(target, pos)))
}

// Registry holds every nav island by id
// Registered as a world resource and shared by navigation and spawning
type Registry struct {
	islands map[int]*Archipelago
}

// NewRegistry creates an empty island registry
func NewRegistry() *Registry {
	return &Registry{islands: make(map[int]*Archipelago)}
}

// Add registers an island, replacing any previous island with the same id
func (r *Registry) Add(a *Archipelago) {
	r.islands[a.ID] = a
}

// Get returns an island by id
func (r *Registry) Get(id int) (*Archipelago, bool) {
	a, ok := r.islands[id]
	return a, ok
}

// All returns every registered island
func (r *Registry) All() []*Archipelago {
	out := make([]*Archipelago, 0, len(r.islands))
	for _, a := range r.islands {
		out = append(out, a)
	}
	return out
}
