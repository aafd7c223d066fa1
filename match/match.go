// Package match runs one brain against one game to a terminal outcome.
//
// The loop is single-threaded and synchronous: exactly one tick executes at a
// time, the brain only reads the game between ticks, and the game is owned by
// the loop for its whole lifetime.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/brensch/hamsnake/brains"
	"github.com/brensch/hamsnake/game"
)

// Pacer is the opaque wait between ticks. It has no effect on the simulation.
type Pacer func(ctx context.Context)

// NopPacer runs the match flat out.
func NopPacer(context.Context) {}

// SleepPacer waits d between ticks, waking early on cancellation.
func SleepPacer(d time.Duration) Pacer {
	return func(ctx context.Context) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
}

// Observer is called after every tick with the direction the brain proposed
// and the outcome the game reported. Observers read the game, never write.
type Observer func(dir game.Direction, outcome game.Outcome, g *game.Game)

type Options struct {
	Pacer    Pacer    // nil: no pacing
	Observer Observer // nil: no observation
	MaxMoves int      // 0: unlimited
}

// Result summarizes a finished match.
type Result struct {
	Outcome game.Outcome
	Moves   int
	Apples  int
}

// Tick runs one decision round: ask the brain, step the game, notify the
// observer. Both Play and interactive frontends drive matches through it so
// a tick means the same thing everywhere.
func Tick(g *game.Game, brain brains.Brain, obs Observer) game.Outcome {
	dir := brain.Choose(g)
	outcome := g.Step(dir)
	if obs != nil {
		obs(dir, outcome, g)
	}
	return outcome
}

// Play ticks the game until a terminal outcome, context cancellation, or the
// MaxMoves guard. The returned error is non-nil only for the latter two; a
// lost match is a normal result, not an error.
func Play(ctx context.Context, g *game.Game, brain brains.Brain, opts Options) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return result(g, game.Continued), err
		}

		outcome := Tick(g, brain, opts.Observer)
		if outcome.Terminal() {
			return result(g, outcome), nil
		}
		if opts.MaxMoves > 0 && g.Moves() >= opts.MaxMoves {
			return result(g, outcome), fmt.Errorf("move limit %d reached", opts.MaxMoves)
		}

		if opts.Pacer != nil {
			opts.Pacer(ctx)
		}
	}
}

func result(g *game.Game, outcome game.Outcome) Result {
	return Result{Outcome: outcome, Moves: g.Moves(), Apples: g.ApplesEaten()}
}
