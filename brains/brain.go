// Package brains implements the interchangeable decision strategies that
// drive the snake. A brain is a pure function of the observed game state;
// it never mutates the game.
package brains

import (
	"fmt"
	"math/rand"

	"github.com/brensch/hamsnake/game"
)

// Brain picks the next move for the snake each tick.
// Returning a non-movement direction forfeits the match.
type Brain interface {
	Name() string
	Choose(g *game.Game) game.Direction
}

// Names lists the selectable strategies, least to most sophisticated.
var Names = []string{"random", "greedy", "greedy-picky", "hamiltonian", "impatient"}

// New maps a strategy name to an implementation. The rng is only used by
// strategies that want entropy; deterministic brains ignore it.
func New(name string, rng *rand.Rand) (Brain, error) {
	switch name {
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("random brain needs a random source")
		}
		return &Random{rng: rng}, nil
	case "greedy":
		return Greedy{}, nil
	case "greedy-picky":
		return GreedyPicky{}, nil
	case "hamiltonian":
		return Hamiltonian{}, nil
	case "impatient":
		return Impatient{}, nil
	}
	return nil, fmt.Errorf("unknown brain %q (have %v)", name, Names)
}
