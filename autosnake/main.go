// Package main runs an autonomous snake match in the terminal.
//
// The snake is driven by one of the selectable brains; the game renders live
// in a bubbletea TUI, or runs flat out with -headless. With -record-dir each
// match is written as a parquet file the viewer binary can replay.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/hamsnake/brains"
	"github.com/brensch/hamsnake/game"
	"github.com/brensch/hamsnake/match"
	"github.com/brensch/hamsnake/store"
)

func main() {
	width := flag.Int("width", 9, "Board width (>= 2)")
	height := flag.Int("height", 9, "Board height (>= 2)")
	brainName := flag.String("brain", "impatient", fmt.Sprintf("Brain to drive the snake (%s)", strings.Join(brains.Names, ", ")))
	seed := flag.Int64("seed", 0, "Random seed; 0 uses the current time")
	fps := flag.Int("fps", 15, "Ticks per second in TUI mode; pacing delay in headless mode (0 = flat out)")
	recordDir := flag.String("record-dir", "", "If set, write the match as parquet into this directory")
	headless := flag.Bool("headless", false, "Run without the TUI and log the result")
	maxMoves := flag.Int("max-moves", 1_000_000, "Abort the match after this many moves")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	g, err := game.NewGame(int32(*width), int32(*height), rng)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	brain, err := brains.New(*brainName, rng)
	if err != nil {
		log.Fatalf("Failed to create brain: %v", err)
	}

	var rec *store.Recorder
	if *recordDir != "" {
		rec = store.NewRecorder("", brain.Name())
	}

	log.Printf("Starting %dx%d match, brain=%s seed=%d", *width, *height, brain.Name(), *seed)

	if *headless {
		runHeadless(g, brain, rec, *recordDir, *fps, *maxMoves)
		return
	}

	if *fps <= 0 {
		// Flat out only makes sense headless; the TUI needs a frame rate.
		*fps = 15
	}
	m := model{
		g:        g,
		brain:    brain,
		rec:      rec,
		fps:      *fps,
		maxMoves: *maxMoves,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		log.Fatalf("TUI failed: %v", err)
	}

	fm := final.(model)
	reportResult(fm.result, fm.err)
	flushRecording(rec, *recordDir)
}

func runHeadless(g *game.Game, brain brains.Brain, rec *store.Recorder, recordDir string, fps, maxMoves int) {
	opts := match.Options{MaxMoves: maxMoves}
	if fps > 0 {
		opts.Pacer = match.SleepPacer(time.Second / time.Duration(fps))
	}
	if rec != nil {
		opts.Observer = rec.Observe
	}

	res, err := match.Play(context.Background(), g, brain, opts)
	reportResult(res, err)
	flushRecording(rec, recordDir)
}

func reportResult(res match.Result, err error) {
	if err != nil {
		log.Fatalf("Match aborted: %v", err)
	}
	log.Printf("Match over: %s after %d moves, %d apples (%.2f moves/apple)",
		res.Outcome, res.Moves, res.Apples, movesPerApple(res.Moves, res.Apples))
}

func flushRecording(rec *store.Recorder, recordDir string) {
	if rec == nil {
		return
	}
	outPath, err := rec.Flush(recordDir)
	if err != nil {
		log.Fatalf("Failed to write recording: %v", err)
	}
	log.Printf("Recording written to: %s", outPath)
}

func movesPerApple(moves, apples int) float64 {
	if apples == 0 {
		return 0
	}
	return float64(moves) / float64(apples)
}

// TUI

type model struct {
	g        *game.Game
	brain    brains.Brain
	rec      *store.Recorder
	fps      int
	maxMoves int

	done   bool
	result match.Result
	err    error
}

type tickMsg time.Time

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		var obs match.Observer
		if m.rec != nil {
			obs = m.rec.Observe
		}
		outcome := match.Tick(m.g, m.brain, obs)
		if outcome.Terminal() {
			m.done = true
			m.result = match.Result{Outcome: outcome, Moves: m.g.Moves(), Apples: m.g.ApplesEaten()}
			return m, nil
		}
		if m.maxMoves > 0 && m.g.Moves() >= m.maxMoves {
			m.done = true
			m.result = match.Result{Outcome: outcome, Moves: m.g.Moves(), Apples: m.g.ApplesEaten()}
			m.err = fmt.Errorf("move limit %d reached", m.maxMoves)
			return m, nil
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(renderBoard(m.g))
	fmt.Fprintf(&b, "Brain: %s | Apples: %d | Moves: %d | Moves/apple: %.2f\n",
		m.brain.Name(), m.g.ApplesEaten(), m.g.Moves(), movesPerApple(m.g.Moves(), m.g.ApplesEaten()))

	if m.done {
		fmt.Fprintf(&b, "\nMatch over: %s. Press q to quit.\n", m.result.Outcome)
	} else {
		b.WriteString("\nPress q to quit.\n")
	}
	return b.String()
}

// renderBoard draws the field with the body chain's own directions: the head
// is '#', body cells show the arrow stored in the cell, the apple is 'ø'.
func renderBoard(g *game.Game) string {
	var b strings.Builder

	border := strings.Repeat("-", int(g.Width())*3+2)
	b.WriteString(border)
	b.WriteByte('\n')

	for y := int32(0); y < g.Height(); y++ {
		b.WriteByte('|')
		for x := int32(0); x < g.Width(); x++ {
			p := game.Point{X: x, Y: y}
			b.WriteString(cellGlyph(g, p))
		}
		b.WriteString("|\n")
	}

	b.WriteString(border)
	b.WriteByte('\n')
	return b.String()
}

func cellGlyph(g *game.Game, p game.Point) string {
	if p == g.Head() {
		return " # "
	}
	switch g.Cell(p) {
	case game.Left:
		return " ← "
	case game.Right:
		return " → "
	case game.Up:
		return " ↑ "
	case game.Down:
		return " ↓ "
	case game.Terminator:
		return " * "
	}
	if p == g.Apple() {
		return " ø "
	}
	return "   "
}
