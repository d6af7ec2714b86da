package navigation

import (
	"testing"

	"github.com/lixenwraith/revenant/vmath"
)

func carvedIsland(w, h int, cfg LayoutConfig) *Archipelago {
	a := NewArchipelago(0, vmath.Vec3{}, 1.0, w, h, 1, 1)
	CarveWalls(a, cfg)
	return a
}

func TestCarveWallsOpensEveryRoom(t *testing.T) {
	a := carvedIsland(17, 11, LayoutConfig{Seed: 7})

	for y := 1; y < 11; y += 2 {
		for x := 1; x < 17; x += 2 {
			if a.Blocked(x, y) {
				t.Errorf("room (%d,%d) still walled", x, y)
			}
		}
	}
}

func TestCarveWallsKeepsBorder(t *testing.T) {
	a := carvedIsland(17, 11, LayoutConfig{Seed: 7})

	for x := 0; x < 17; x++ {
		if !a.Blocked(x, 0) || !a.Blocked(x, 10) {
			t.Fatalf("border open at column %d", x)
		}
	}
	for y := 0; y < 11; y++ {
		if !a.Blocked(0, y) || !a.Blocked(16, y) {
			t.Fatalf("border open at row %d", y)
		}
	}
}

func TestCarveWallsOpenBorders(t *testing.T) {
	a := carvedIsland(17, 11, LayoutConfig{Seed: 7, OpenBorders: true})

	open := 0
	for x := 0; x < 17; x++ {
		if !a.Blocked(x, 0) {
			open++
		}
	}
	if open == 0 {
		t.Error("top border fully walled despite OpenBorders")
	}
}

func TestCarveWallsDeterministicSeed(t *testing.T) {
	a := carvedIsland(17, 11, LayoutConfig{Seed: 42, Braiding: 0.5})
	b := carvedIsland(17, 11, LayoutConfig{Seed: 42, Braiding: 0.5})

	for y := 0; y < 11; y++ {
		for x := 0; x < 17; x++ {
			if a.Blocked(x, y) != b.Blocked(x, y) {
				t.Fatalf("layouts diverge at (%d,%d)", x, y)
			}
		}
	}
}

func TestCarveWallsBraidingRemovesDeadEnds(t *testing.T) {
	deadEnds := func(a *Archipelago) int {
		n := 0
		for y := 1; y < a.Height-1; y += 2 {
			for x := 1; x < a.Width-1; x += 2 {
				if a.Blocked(x, y) {
					continue
				}
				exits := 0
				for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
					if !a.Blocked(x+d[0], y+d[1]) {
						exits++
					}
				}
				if exits == 1 {
					n++
				}
			}
		}
		return n
	}

	tree := carvedIsland(33, 33, LayoutConfig{Seed: 9})
	braided := carvedIsland(33, 33, LayoutConfig{Seed: 9, Braiding: 1.0})

	if deadEnds(braided) >= deadEnds(tree) {
		t.Errorf("braiding did not reduce dead ends: %d -> %d",
			deadEnds(tree), deadEnds(braided))
	}
}
