package navigation

import (
	"testing"

	"github.com/lixenwraith/revenant/vmath"
)

func newTestIsland() *Archipelago {
	return NewArchipelago(0, vmath.Vec3{}, 1.0, 16, 16, 1, 1)
}

func TestCellMappingRoundTrip(t *testing.T) {
	a := newTestIsland()

	c := a.WorldToCell(vmath.Vec3{X: 3.4, Z: 7.9})
	if c.X != 3 || c.Y != 7 {
		t.Errorf("Expected cell (3,7), got %+v", c)
	}

	p := a.CellToWorld(c)
	if p.X != 3.5 || p.Z != 7.5 {
		t.Errorf("Expected cell center (3.5, 7.5), got %+v", p)
	}

	back := a.WorldToCell(p)
	if back != c {
		t.Errorf("Round trip moved the cell: %+v -> %+v", c, back)
	}
}

func TestBlockedOutOfBounds(t *testing.T) {
	a := newTestIsland()

	if !a.Blocked(-1, 0) || !a.Blocked(0, 16) {
		t.Error("Out-of-bounds cells must block")
	}
	if a.Blocked(5, 5) {
		t.Error("Empty cell must not block")
	}

	a.SetWall(5, 5, true)
	if !a.Blocked(5, 5) {
		t.Error("Walled cell must block")
	}
	a.SetWall(5, 5, false)
	if a.Blocked(5, 5) {
		t.Error("Cleared cell must not block")
	}
}

func TestSteerFollowsFlowField(t *testing.T) {
	a := newTestIsland()
	target := a.CellToWorld(Cell{X: 12, Y: 8})
	a.Update([]vmath.Vec3{target})

	pos := a.CellToWorld(Cell{X: 4, Y: 8})
	dir := a.Steer(pos, target, 0.4)

	// Open ground: straight east toward the quarry
	if dir.X <= 0.9 || dir.Y != 0 {
		t.Errorf("Expected eastward steering, got %+v", dir)
	}
}

func TestSteerRoutesAroundWall(t *testing.T) {
	a := newTestIsland()

	// A vertical wall between agent and quarry with a gap at the top
	for y := 4; y < 16; y++ {
		a.SetWall(8, y, true)
	}

	target := a.CellToWorld(Cell{X: 12, Y: 8})
	a.Update([]vmath.Vec3{target})

	pos := a.CellToWorld(Cell{X: 6, Y: 8})
	dir := a.Steer(pos, target, 0.4)

	// The flow field must deflect toward the gap rather than point at
	// the wall
	if dir.Z >= 0 && dir.X >= 0.99 {
		t.Errorf("Expected deflection around the wall, got %+v", dir)
	}

	dist := a.Cache.GetDistance(6, 8)
	direct := a.Cache.GetDistance(10, 8)
	if dist <= direct {
		t.Errorf("Expected walled side farther than open side, got %d <= %d", dist, direct)
	}
}

func TestSteerFallsBackWithoutField(t *testing.T) {
	a := newTestIsland()

	// No Update call: the cache holds no directions, steering degrades
	// to the direct bearing
	pos := vmath.Vec3{X: 2, Z: 2}
	target := vmath.Vec3{X: 2, Z: 10}
	dir := a.Steer(pos, target, 0.4)

	if dir.Z <= 0.9 {
		t.Errorf("Expected direct bearing fallback, got %+v", dir)
	}
}

func TestFlowFieldThrottle(t *testing.T) {
	a := NewArchipelago(0, vmath.Vec3{}, 1.0, 16, 16, 5, 4)
	target := a.CellToWorld(Cell{X: 12, Y: 8})

	if !a.Cache.Update([]Cell{a.WorldToCell(target)}, a.Blocked) {
		t.Fatal("Expected initial compute")
	}

	// Small target drift within dirty distance stays throttled
	near := a.WorldToCell(target)
	near.X++
	if a.Cache.Update([]Cell{near}, a.Blocked) {
		t.Error("Expected drift within dirty distance throttled")
	}

	// A jump beyond dirty distance recomputes immediately
	far := a.WorldToCell(target)
	far.X += 8
	if !a.Cache.Update([]Cell{far}, a.Blocked) {
		t.Error("Expected jump past dirty distance to recompute")
	}
}

func TestFootprintBlocksNarrowGap(t *testing.T) {
	a := newTestIsland()

	// A one-cell gap in a wall line
	for y := 0; y < 16; y++ {
		if y != 8 {
			a.SetWall(8, y, true)
		}
	}

	slim := a.BlockedFor(0.4)
	if slim(8, 8) {
		t.Error("Gap must pass a slim agent")
	}

	// A wide body cannot fit a one-cell gap
	wide := a.BlockedFor(2.0)
	if !wide(8, 8) {
		t.Error("Gap must block a wide agent")
	}
}
