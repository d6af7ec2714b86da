package navigation

import (
	"math/rand"
	"time"
)

// LayoutConfig controls procedural wall carving for an island
type LayoutConfig struct {
	// Braiding ranges 0 (a perfect labyrinth, one route between any two
	// rooms) to 1 (no dead ends). Extra openings are only cut where they
	// neither open a 2x2 clearing nor strand an isolated wall block
	Braiding float64

	// OpenBorders clears the outer ring so routes can leave the grid edge
	OpenBorders bool

	// Seed of 0 picks a random layout
	Seed int64
}

// CarveWalls replaces the island wall grid with a generated labyrinth.
// The carved region is the largest odd-sized grid that fits the island;
// any leftover row or column stays walled
func CarveWalls(a *Archipelago, cfg LayoutConfig) {
	rows := oddBelow(a.Height)
	cols := oddBelow(a.Width)

	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
		for x := range grid[y] {
			grid[y][x] = true
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	carveTree(grid, Cell{X: 1, Y: 1}, rng)

	// Border removal happens before braiding so edge rooms already count
	// their outside opening as an exit
	if cfg.OpenBorders {
		clearBorder(grid)
	}
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}

	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			blocked := true
			if y < rows && x < cols {
				blocked = grid[y][x]
			}
			a.SetWall(x, y, blocked)
		}
	}
}

// carveTree runs a depth-first backtracker over the odd-coordinate rooms,
// knocking out the wall between each visited pair
func carveTree(grid [][]bool, start Cell, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	stack := []Cell{start}
	grid[start.Y][start.X] = false

	jumps := []Cell{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var open []Cell
		for _, j := range jumps {
			nx, ny := cur.X+j.X, cur.Y+j.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] {
				open = append(open, j)
			}
		}

		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		j := open[rng.Intn(len(open))]
		grid[cur.Y+j.Y/2][cur.X+j.X/2] = false
		grid[cur.Y+j.Y][cur.X+j.X] = false
		stack = append(stack, Cell{X: cur.X + j.X, Y: cur.Y + j.Y})
	}
}

// braid opens a wall next to dead-end rooms with the given probability,
// turning the spanning tree into a graph with cycles
func braid(grid [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	steps := []Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	jumps := []Cell{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] {
				continue
			}

			exits := 0
			for _, s := range steps {
				if !grid[y+s.Y][x+s.X] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			var openable []Cell
			for _, j := range jumps {
				nx, ny := x+j.X, y+j.Y
				wx, wy := x+j.X/2, y+j.Y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if !grid[ny][nx] && grid[wy][wx] && safeToOpen(grid, wx, wy) {
					openable = append(openable, Cell{X: wx, Y: wy})
				}
			}

			if len(openable) > 0 {
				c := openable[rng.Intn(len(openable))]
				grid[c.Y][c.X] = false
			}
		}
	}
}

// safeToOpen rejects wall removals that would create a 2x2 clearing or
// leave a neighboring wall cell with no wall connection at all
func safeToOpen(grid [][]bool, x, y int) bool {
	rows, cols := len(grid), len(grid[0])

	passage := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return !grid[ty][tx]
	}

	// Each 2x2 quadrant touching (x,y) must keep at least one wall
	if passage(x-1, y-1) && passage(x, y-1) && passage(x-1, y) {
		return false
	}
	if passage(x, y-1) && passage(x+1, y-1) && passage(x+1, y) {
		return false
	}
	if passage(x-1, y) && passage(x-1, y+1) && passage(x, y+1) {
		return false
	}
	if passage(x+1, y) && passage(x, y+1) && passage(x+1, y+1) {
		return false
	}

	steps := []Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	for _, s := range steps {
		nx, ny := x+s.X, y+s.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || !grid[ny][nx] {
			continue
		}

		// (x,y) is about to become a passage, so it no longer counts as
		// a connection for this neighbor
		connected := 0
		for _, s2 := range steps {
			nnx, nny := nx+s2.X, ny+s2.Y
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && grid[nny][nnx] {
				connected++
			}
		}
		if connected == 0 {
			return false
		}
	}
	return true
}

func clearBorder(grid [][]bool) {
	rows, cols := len(grid), len(grid[0])
	for x := 0; x < cols; x++ {
		grid[0][x] = false
		grid[rows-1][x] = false
	}
	for y := 0; y < rows; y++ {
		grid[y][0] = false
		grid[y][cols-1] = false
	}
}

func oddBelow(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
