package match

import (
	"context"
	"math/rand"
	"testing"

	"github.com/brensch/hamsnake/brains"
	"github.com/brensch/hamsnake/game"
)

// forfeiter is a brain that always declines to move.
type forfeiter struct{}

func (forfeiter) Name() string                     { return "forfeiter" }
func (forfeiter) Choose(*game.Game) game.Direction { return game.Empty }

func playToEnd(t *testing.T, w, h int32, seed int64, brainName string) Result {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g, err := game.NewGame(w, h, rng)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	brain, err := brains.New(brainName, rng)
	if err != nil {
		t.Fatalf("brains.New: %v", err)
	}

	res, err := Play(context.Background(), g, brain, Options{
		MaxMoves: 100000,
		Observer: func(dir game.Direction, outcome game.Outcome, g *game.Game) {
			if outcome == game.CrashedWall || outcome == game.AteSnake {
				t.Fatalf("%s crashed: %v after move %d (dir %v, head %v)",
					brainName, outcome, g.Moves(), dir, g.Head())
			}
		},
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	return res
}

func TestHamiltonian_FillsTheBoard(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		res := playToEnd(t, 5, 5, seed, "hamiltonian")
		if res.Outcome != game.Won {
			t.Fatalf("seed %d: outcome=%v want=won", seed, res.Outcome)
		}
		if res.Apples != 24 {
			t.Fatalf("seed %d: apples=%d want=24 (all cells but the initial head)", seed, res.Apples)
		}
	}
}

func TestHamiltonian_FillsEvenBoards(t *testing.T) {
	for _, dims := range [][2]int32{{4, 4}, {6, 6}, {4, 6}} {
		res := playToEnd(t, dims[0], dims[1], 7, "hamiltonian")
		if res.Outcome != game.Won {
			t.Fatalf("%dx%d: outcome=%v want=won", dims[0], dims[1], res.Outcome)
		}
		want := int(dims[0])*int(dims[1]) - 1
		if res.Apples != want {
			t.Fatalf("%dx%d: apples=%d want=%d", dims[0], dims[1], res.Apples, want)
		}
	}
}

func TestImpatient_WinsAndNeverDetours(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		ham := playToEnd(t, 5, 5, seed, "hamiltonian")
		imp := playToEnd(t, 5, 5, seed, "impatient")
		if imp.Outcome != game.Won {
			t.Fatalf("seed %d: impatient outcome=%v want=won", seed, imp.Outcome)
		}
		// The hybrid only takes shortcuts, never detours, so it can't be
		// slower than the pure cycle follower on the same seed.
		if imp.Moves > ham.Moves {
			t.Fatalf("seed %d: impatient took %d moves, hamiltonian %d", seed, imp.Moves, ham.Moves)
		}
	}
}

func TestTick_StepsAndObserves(t *testing.T) {
	g, err := game.NewGame(4, 4, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	calls := 0
	outcome := Tick(g, forfeiter{}, func(dir game.Direction, o game.Outcome, g *game.Game) {
		calls++
		if dir != game.Empty {
			t.Fatalf("observer saw dir=%v want=empty", dir)
		}
		if o != game.Forfeit {
			t.Fatalf("observer saw outcome=%v want=forfeit", o)
		}
	})
	if outcome != game.Forfeit {
		t.Fatalf("Tick=%v want=forfeit", outcome)
	}
	if calls != 1 {
		t.Fatalf("observer called %d times want 1", calls)
	}
	if g.Moves() != 1 {
		t.Fatalf("moves=%d want=1", g.Moves())
	}
}

func TestPlay_Forfeit(t *testing.T) {
	g, err := game.NewGame(4, 4, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	res, err := Play(context.Background(), g, forfeiter{}, Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if res.Outcome != game.Forfeit {
		t.Fatalf("outcome=%v want=forfeit", res.Outcome)
	}
	if res.Moves != 1 {
		t.Fatalf("moves=%d want=1", res.Moves)
	}
}

func TestPlay_MaxMovesGuard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g, err := game.NewGame(20, 20, rng)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	brain, err := brains.New("hamiltonian", rng)
	if err != nil {
		t.Fatalf("brains.New: %v", err)
	}
	res, err := Play(context.Background(), g, brain, Options{MaxMoves: 10})
	if err == nil {
		t.Fatalf("expected move-limit error, got result %+v", res)
	}
	if res.Moves != 10 {
		t.Fatalf("moves=%d want=10", res.Moves)
	}
}

func TestPlay_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := game.NewGame(4, 4, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := Play(ctx, g, forfeiter{}, Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestPlay_ObserverSeesEveryTick(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g, err := game.NewGame(5, 5, rng)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	brain, err := brains.New("hamiltonian", rng)
	if err != nil {
		t.Fatalf("brains.New: %v", err)
	}

	ticks := 0
	res, err := Play(context.Background(), g, brain, Options{
		MaxMoves: 100000,
		Observer: func(dir game.Direction, outcome game.Outcome, g *game.Game) {
			ticks++
			if g.Moves() != ticks {
				t.Fatalf("observer tick %d but game reports %d moves", ticks, g.Moves())
			}
		},
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if ticks != res.Moves {
		t.Fatalf("observed %d ticks, result reports %d moves", ticks, res.Moves)
	}
}
