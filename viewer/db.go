package main

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// matchDB reads recorded match parquet files through an in-memory DuckDB.
// The ticks view is rebound on every query: read_parquet errors on a glob
// with zero files, so the view can only exist once at least one match has
// been recorded, and rebinding also picks up matches recorded after startup.
type matchDB struct {
	db      *sql.DB
	dataDir string
}

func openDB(dataDir string) (*matchDB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &matchDB{db: db, dataDir: dataDir}, nil
}

func (m *matchDB) Close() error { return m.db.Close() }

// ensureTicksView binds the ticks view over the current parquet files.
// Returns false when the data dir holds no recorded matches yet. In-progress
// writes live under tmp/ with a .tmp suffix, so the glob never sees them.
func (m *matchDB) ensureTicksView(ctx context.Context) (bool, error) {
	glob := filepath.Join(m.dataDir, "*.parquet")
	files, err := filepath.Glob(glob)
	if err != nil {
		return false, fmt.Errorf("glob %s: %w", glob, err)
	}
	if len(files) == 0 {
		return false, nil
	}
	sqlText := `CREATE OR REPLACE VIEW ticks AS
		SELECT * FROM read_parquet('` + escapeSQLString(glob) + `')`
	if _, err := m.db.ExecContext(ctx, sqlText); err != nil {
		return false, fmt.Errorf("create ticks view: %w", err)
	}
	return true, nil
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// MatchSummary describes one recorded match.
type MatchSummary struct {
	MatchID string `json:"match_id"`
	Brain   string `json:"brain"`
	Width   int32  `json:"width"`
	Height  int32  `json:"height"`
	Ticks   int64  `json:"ticks"`
	Apples  int32  `json:"apples"`
	Outcome string `json:"outcome"`
}

// Frame is one tick of a recorded match, ready for JSON.
type Frame struct {
	Move      int32   `json:"move"`
	Direction string  `json:"direction"`
	Outcome   string  `json:"outcome"`
	Head      Point   `json:"head"`
	Apple     Point   `json:"apple"`
	Apples    int32   `json:"apples"`
	Body      []Point `json:"body"`
}

type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

func (m *matchDB) Matches(ctx context.Context) ([]MatchSummary, error) {
	ok, err := m.ensureTicksView(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []MatchSummary{}, nil
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT
			match_id,
			any_value(brain) AS brain,
			any_value(width)::INTEGER AS width,
			any_value(height)::INTEGER AS height,
			count(*)::BIGINT AS ticks,
			max(apples)::INTEGER AS apples,
			arg_max(outcome, move) AS outcome
		FROM ticks
		GROUP BY match_id
		ORDER BY match_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]MatchSummary, 0, 64)
	for rows.Next() {
		var s MatchSummary
		if err := rows.Scan(&s.MatchID, &s.Brain, &s.Width, &s.Height, &s.Ticks, &s.Apples, &s.Outcome); err != nil {
			return nil, err
		}
		matches = append(matches, s)
	}
	return matches, rows.Err()
}

func (m *matchDB) Frames(ctx context.Context, matchID string) ([]Frame, error) {
	ok, err := m.ensureTicksView(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT move::INTEGER, direction, outcome,
		       head_x::INTEGER, head_y::INTEGER,
		       apple_x::INTEGER, apple_y::INTEGER,
		       apples::INTEGER, body_x, body_y
		FROM ticks
		WHERE match_id = ?
		ORDER BY move ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frames := make([]Frame, 0, 256)
	for rows.Next() {
		var f Frame
		var bodyXAny, bodyYAny any
		if err := rows.Scan(&f.Move, &f.Direction, &f.Outcome,
			&f.Head.X, &f.Head.Y, &f.Apple.X, &f.Apple.Y,
			&f.Apples, &bodyXAny, &bodyYAny); err != nil {
			return nil, err
		}
		f.Body = zipPoints(asInt32Slice(bodyXAny), asInt32Slice(bodyYAny))
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

func zipPoints(xs, ys []int32) []Point {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Point{X: xs[i], Y: ys[i]})
	}
	return out
}

// asInt32Slice converts whatever the duckdb driver hands back for a LIST
// column into a plain []int32.
func asInt32Slice(v any) []int32 {
	switch vv := v.(type) {
	case nil:
		return nil
	case []int32:
		return vv
	case []int64:
		out := make([]int32, 0, len(vv))
		for _, x := range vv {
			out = append(out, int32(x))
		}
		return out
	case []any:
		out := make([]int32, 0, len(vv))
		for _, x := range vv {
			out = append(out, int32(asInt64(x)))
		}
		return out
	default:
		return nil
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case uint64:
		return int64(t)
	case float64:
		return int64(t)
	default:
		return 0
	}
}
