package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/brensch/hamsnake/brains"
	"github.com/brensch/hamsnake/game"
	"github.com/brensch/hamsnake/match"
	"github.com/brensch/hamsnake/store"
)

// recordMatch plays a short seeded match and writes it into dir.
func recordMatch(t *testing.T, dir, matchID string) match.Result {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	g, err := game.NewGame(4, 4, rng)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	brain, err := brains.New("hamiltonian", rng)
	if err != nil {
		t.Fatalf("brains.New: %v", err)
	}

	rec := store.NewRecorder(matchID, brain.Name())
	res, err := match.Play(context.Background(), g, brain, match.Options{
		MaxMoves: 100000,
		Observer: rec.Observe,
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, err := rec.Flush(dir); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return res
}

func TestMatchDB_EmptyDataDir(t *testing.T) {
	m, err := openDB(t.TempDir())
	if err != nil {
		t.Fatalf("openDB: %v", err)
	}
	defer m.Close()

	matches, err := m.Matches(context.Background())
	if err != nil {
		t.Fatalf("Matches on empty dir: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %d matches from an empty dir", len(matches))
	}

	frames, err := m.Frames(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Frames on empty dir: %v", err)
	}
	if len(frames) != 0 {
		t.Fatalf("got %d frames from an empty dir", len(frames))
	}
}

func TestMatchDB_SeesMatchesRecordedAfterOpen(t *testing.T) {
	dir := t.TempDir()
	m, err := openDB(dir)
	if err != nil {
		t.Fatalf("openDB: %v", err)
	}
	defer m.Close()

	if matches, err := m.Matches(context.Background()); err != nil || len(matches) != 0 {
		t.Fatalf("before recording: matches=%d err=%v", len(matches), err)
	}

	res := recordMatch(t, dir, "replay_a")

	matches, err := m.Matches(context.Background())
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches want 1", len(matches))
	}
	s := matches[0]
	if s.MatchID != "replay_a" || s.Brain != "hamiltonian" {
		t.Fatalf("summary=%+v", s)
	}
	if s.Ticks != int64(res.Moves) || s.Outcome != res.Outcome.String() {
		t.Fatalf("summary ticks=%d outcome=%q want %d/%q", s.Ticks, s.Outcome, res.Moves, res.Outcome)
	}

	frames, err := m.Frames(context.Background(), "replay_a")
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != res.Moves {
		t.Fatalf("got %d frames want %d", len(frames), res.Moves)
	}
	last := frames[len(frames)-1]
	if last.Outcome != res.Outcome.String() || int(last.Apples) != res.Apples {
		t.Fatalf("last frame=%+v want outcome=%q apples=%d", last, res.Outcome, res.Apples)
	}
	if len(last.Body) != res.Apples+1 {
		t.Fatalf("last frame body has %d segments want %d", len(last.Body), res.Apples+1)
	}
}
