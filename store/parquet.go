// Package store persists finished matches as parquet files, one row per
// tick, so the replay viewer can query them without a database server.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/brensch/hamsnake/game"
)

// TickRow is one simulation tick. Body coordinates are stored as parallel
// column slices, head first, which compresses well and keeps the schema flat.
type TickRow struct {
	MatchID string `parquet:"match_id,dict"`
	Move    int32  `parquet:"move"`
	Brain   string `parquet:"brain,dict"`

	Width  int32 `parquet:"width"`
	Height int32 `parquet:"height"`

	Direction string `parquet:"direction,dict"`
	Outcome   string `parquet:"outcome,dict"`

	HeadX  int32 `parquet:"head_x"`
	HeadY  int32 `parquet:"head_y"`
	AppleX int32 `parquet:"apple_x"`
	AppleY int32 `parquet:"apple_y"`
	Apples int32 `parquet:"apples"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`
}

// Recorder buffers one row per tick; plug Observe into match.Options and
// Flush after the match ends.
type Recorder struct {
	matchID string
	brain   string
	rows    []TickRow
}

// NewRecorder creates a recorder for one match. An empty matchID gets a
// timestamp-derived one.
func NewRecorder(matchID, brain string) *Recorder {
	if matchID == "" {
		matchID = fmt.Sprintf("match_%d", time.Now().UnixNano())
	}
	return &Recorder{matchID: matchID, brain: brain}
}

func (r *Recorder) MatchID() string { return r.matchID }

// Observe appends the current tick. Matches the match.Observer signature.
func (r *Recorder) Observe(dir game.Direction, outcome game.Outcome, g *game.Game) {
	body := g.Body()
	bx := make([]int32, len(body))
	by := make([]int32, len(body))
	for i, p := range body {
		bx[i] = p.X
		by[i] = p.Y
	}

	r.rows = append(r.rows, TickRow{
		MatchID:   r.matchID,
		Move:      int32(g.Moves()),
		Brain:     r.brain,
		Width:     g.Width(),
		Height:    g.Height(),
		Direction: dir.String(),
		Outcome:   outcome.String(),
		HeadX:     g.Head().X,
		HeadY:     g.Head().Y,
		AppleX:    g.Apple().X,
		AppleY:    g.Apple().Y,
		Apples:    int32(g.ApplesEaten()),
		BodyX:     bx,
		BodyY:     by,
	})
}

// Flush writes the buffered rows to outDir and returns the file path.
func (r *Recorder) Flush(outDir string) (string, error) {
	if len(r.rows) == 0 {
		return "", fmt.Errorf("no ticks recorded for match %s", r.matchID)
	}
	return WriteMatchParquetAtomic(outDir, r.matchID, r.rows)
}

// WriteMatchParquetAtomic writes rows into outDir/tmp and then atomically
// moves the file into outDir, so readers never observe partially-written
// parquet files.
func WriteMatchParquetAtomic(outDir, matchID string, rows []TickRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("%s.parquet", matchID)
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "match_tick_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}
