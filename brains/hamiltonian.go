package brains

import (
	"github.com/brensch/hamsnake/game"
)

// CycleDirection returns the direction that continues a fixed Hamiltonian
// cycle through a w×h grid from the given cell. The cycle is a column
// serpentine: row 0 is traversed leftward back to the origin, column 0
// descends, and the remaining columns weave up and down, with extra zigzag
// rules folding an odd final column into the pattern.
//
// Grids with an odd number of cells cannot be covered by a single cycle (the
// grid graph is bipartite), so one corner-adjacent cell is skipped per lap.
// Which cell gets skipped depends on the apple: when the apple sits in row 0
// the cycle routes through the top-right corner (skipping (w-2,1)) so the
// corner stays reachable; otherwise it skips the corner itself. That is the
// single apple-dependent branch.
func CycleDirection(w, h int32, head, apple game.Point) game.Direction {
	x, y := head.X, head.Y

	switch {
	case y == 0:
		// The return row, traversed leftward, then descend at the origin.
		if x > 0 {
			return game.Left
		}
		return game.Down

	case x == w-1:
		if odd(x) {
			// Even width: the last column runs straight up.
			return game.Up
		}
		if odd(h - y) {
			return game.Up
		}
		if y == 1 && odd(w) && odd(h) && apple.Y == 0 {
			// Route through the top-right corner to pick up the apple.
			return game.Up
		}
		return game.Left

	case x == w-2 && odd(w):
		// Second-to-last column of an odd-width grid: weave the extra
		// column into the even-column serpentine.
		if even(h - y) {
			return game.Up
		}
		return game.Right

	case odd(x):
		if y > 1 {
			return game.Up
		}
		return game.Right

	default:
		if y < h-1 {
			return game.Down
		}
		return game.Right
	}
}

func odd(v int32) bool  { return v&1 == 1 }
func even(v int32) bool { return v&1 == 0 }

// Hamiltonian follows the fixed cycle and nothing else. It can never starve
// or crash, at the cost of visiting up to w·h-1 cells between apples.
type Hamiltonian struct{}

func (Hamiltonian) Name() string { return "hamiltonian" }

func (Hamiltonian) Choose(g *game.Game) game.Direction {
	return CycleDirection(g.Width(), g.Height(), g.Head(), g.Apple())
}
