package brains

import (
	"math/rand"

	"github.com/brensch/hamsnake/game"
)

// Random walks in a uniformly random cardinal direction each tick. It exists
// as a baseline and dies quickly on anything but the smallest boards.
type Random struct {
	rng *rand.Rand
}

func (b *Random) Name() string { return "random" }

func (b *Random) Choose(g *game.Game) game.Direction {
	return game.Direction(b.rng.Intn(4)) + game.Left
}

// Greedy always heads straight for the apple along the dominant axis. No
// safety checks at all: walls and its own body kill it.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Choose(g *game.Game) game.Direction {
	head, apple := g.Head(), g.Apple()
	dx := apple.X - head.X
	dy := apple.Y - head.Y
	if abs32(dx) > abs32(dy) {
		if dx > 0 {
			return game.Right
		}
		return game.Left
	}
	if dy > 0 {
		return game.Down
	}
	return game.Up
}

// GreedyPicky heads for the apple but refuses moves that leave the board or
// hit the body. It still traps itself once the body gets in the way on both
// axes.
type GreedyPicky struct{}

func (GreedyPicky) Name() string { return "greedy-picky" }

func (GreedyPicky) Choose(g *game.Game) game.Direction {
	head, apple := g.Head(), g.Apple()

	best := game.Empty
	bestCost := int32(1 << 30)
	for _, dir := range []game.Direction{game.Left, game.Right, game.Up, game.Down} {
		p := head.MoveTowards(dir)
		if !g.InBounds(p) || !g.Free(p) {
			continue
		}
		cost := abs32(apple.X-p.X) + abs32(apple.Y-p.Y)
		if cost < bestCost {
			best = dir
			bestCost = cost
		}
	}
	// Empty when boxed in on all four sides: forfeit.
	return best
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
