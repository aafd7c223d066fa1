package brains

import (
	"github.com/brensch/hamsnake/game"
)

// Impatient follows the Hamiltonian cycle but takes greedy shortcuts toward
// the apple when it can prove they are safe and strictly closer. A shortcut is
// committed only if simulating the cycle from the shortcut cell reaches the
// current tail through entirely free cells, the apple lies on that sub-path,
// and the cycle distance from the shortcut cell to the apple is strictly
// shorter than from the current head; otherwise the pure cycle direction is
// used, which is safe by construction.
type Impatient struct{}

func (Impatient) Name() string { return "impatient" }

func (Impatient) Choose(g *game.Game) game.Direction {
	w, h := g.Width(), g.Height()
	head, apple := g.Head(), g.Apple()
	headDist := cycleDistance(w, h, head, apple)

	for _, dir := range rankMoves(head, apple) {
		candidate := head.MoveTowards(dir)
		if !g.InBounds(candidate) || !g.Free(candidate) {
			continue
		}
		appleDist, ok := safeShortcut(g, candidate)
		if ok && appleDist < headDist {
			return dir
		}
	}
	return CycleDirection(w, h, head, apple)
}

// rankMoves orders the four directions by greedy preference: the dominant
// axis toward the apple first (ties and a zero Y delta favor the x-axis),
// then the other axis toward the apple, then the two remaining directions in
// reverse preference.
func rankMoves(head, apple game.Point) [4]game.Direction {
	dx := apple.X - head.X
	dy := apple.Y - head.Y

	var primary, secondary game.Direction
	if abs32(dx) >= abs32(dy) {
		if dx > 0 {
			primary = game.Right
		} else {
			primary = game.Left
		}
		if dy > 0 {
			secondary = game.Down
		} else {
			secondary = game.Up
		}
	} else {
		if dy > 0 {
			primary = game.Down
		} else {
			primary = game.Up
		}
		if dx > 0 {
			secondary = game.Right
		} else {
			secondary = game.Left
		}
	}
	return [4]game.Direction{primary, secondary, secondary.Invert(), primary.Invert()}
}

// cycleDistance counts the cycle steps from a cell to the apple. The apple
// always lies on its own board variant of the cycle, so the walk terminates;
// the cap guards corrupted inputs.
func cycleDistance(w, h int32, from, apple game.Point) int {
	limit := int(w) * int(h)
	pos := from
	for i := 0; i < limit; i++ {
		if pos == apple {
			return i
		}
		pos = pos.MoveTowards(CycleDirection(w, h, pos, apple))
	}
	return limit
}

// safeShortcut simulates the Hamiltonian cycle from the candidate cell until
// it reaches the snake's current tail. Any occupied cell on the way fails the
// proof. On success it reports the number of cycle steps from the candidate
// to the apple; the proof only holds if the apple was visited on the
// sub-path.
func safeShortcut(g *game.Game, from game.Point) (int, bool) {
	w, h := g.Width(), g.Height()
	apple := g.Apple()
	tail := g.Tail()

	appleDist := -1
	pos := from
	limit := int(w) * int(h)
	for i := 0; i <= limit; i++ {
		if pos == apple {
			appleDist = i
		}
		if pos == tail {
			if appleDist < 0 {
				return 0, false
			}
			return appleDist, true
		}
		if pos != from && !g.Free(pos) {
			return 0, false
		}
		pos = pos.MoveTowards(CycleDirection(w, h, pos, apple))
	}
	// The cycle skipped the tail cell this lap (odd-area boards).
	return 0, false
}
