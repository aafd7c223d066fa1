package game

import (
	"fmt"
	"math/rand"
)

// Game owns the field, the head and apple coordinates, and the match
// counters. It is the sole mutator of all of them; strategies only read.
type Game struct {
	width  int32
	height int32
	head   Point
	apple  Point
	field  *Field

	applesEaten int
	moves       int

	rng *rand.Rand
}

// NewGame creates a match on a width×height board with a length-1 snake at a
// random cell and the first apple placed. The rng is injected so callers can
// fix the seed for reproducible runs.
func NewGame(width, height int32, rng *rand.Rand) (*Game, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("board must be at least 2x2, got %dx%d", width, height)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}

	g := &Game{
		width:  width,
		height: height,
		field:  NewField(width, height),
		rng:    rng,
	}
	g.head = RandomPoint(rng, width, height)
	g.field.Set(g.head, Terminator)

	apple, ok := g.field.RandomFreeCell(rng)
	if !ok {
		return nil, fmt.Errorf("no free cell for first apple on %dx%d board", width, height)
	}
	g.apple = apple
	return g, nil
}

// NewScenario builds a game in a specific position. body lists the snake's
// cells head first; consecutive cells must be adjacent. The apple must land
// on a free cell. Used by tests and replay tooling to reproduce exact states.
func NewScenario(width, height int32, body []Point, apple Point, rng *rand.Rand) (*Game, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("board must be at least 2x2, got %dx%d", width, height)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	field := NewField(width, height)
	for i, p := range body {
		if !field.InBounds(p) {
			return nil, fmt.Errorf("body[%d]=%v out of bounds", i, p)
		}
		if !field.IsFree(p) {
			return nil, fmt.Errorf("body[%d]=%v overlaps an earlier segment", i, p)
		}
		if i == len(body)-1 {
			field.Set(p, Terminator)
			continue
		}
		dir, err := directionBetween(p, body[i+1])
		if err != nil {
			return nil, fmt.Errorf("body[%d]: %w", i, err)
		}
		field.Set(p, dir)
	}
	if !field.InBounds(apple) {
		return nil, fmt.Errorf("apple %v out of bounds", apple)
	}
	if !field.IsFree(apple) {
		return nil, fmt.Errorf("apple %v on an occupied cell", apple)
	}

	return &Game{
		width:       width,
		height:      height,
		head:        body[0],
		apple:       apple,
		field:       field,
		applesEaten: len(body) - 1,
		rng:         rng,
	}, nil
}

func directionBetween(from, to Point) (Direction, error) {
	for _, d := range []Direction{Left, Right, Up, Down} {
		if from.MoveTowards(d) == to {
			return d, nil
		}
	}
	return Empty, fmt.Errorf("%v and %v are not adjacent", from, to)
}

func (g *Game) Width() int32     { return g.width }
func (g *Game) Height() int32    { return g.height }
func (g *Game) Head() Point      { return g.head }
func (g *Game) Apple() Point     { return g.apple }
func (g *Game) Moves() int       { return g.moves }
func (g *Game) ApplesEaten() int { return g.applesEaten }
func (g *Game) Length() int      { return g.applesEaten + 1 }

// Cell returns the field content at p. The caller guarantees p is in bounds.
func (g *Game) Cell(p Point) Direction { return g.field.At(p) }

func (g *Game) InBounds(p Point) bool { return g.field.InBounds(p) }

// Free reports whether p holds no body segment.
func (g *Game) Free(p Point) bool { return g.field.IsFree(p) }

// Tail walks the body chain from the head and returns the Terminator cell.
func (g *Game) Tail() Point {
	limit := int(g.width) * int(g.height)
	pos := g.head
	for i := 0; i <= limit; i++ {
		if g.field.At(pos) == Terminator {
			return pos
		}
		pos = g.field.Next(pos)
	}
	panic(fmt.Sprintf("game: body chain from head (%d,%d) has no terminator within %d steps", g.head.X, g.head.Y, limit))
}

// Body reconstructs the ordered segment list, head first, by walking the
// chain. Used by renderers and the match recorder; the simulation itself
// never needs it.
func (g *Game) Body() []Point {
	body := make([]Point, 0, g.Length())
	limit := int(g.width) * int(g.height)
	pos := g.head
	for i := 0; i <= limit; i++ {
		body = append(body, pos)
		if g.field.At(pos) == Terminator {
			return body
		}
		pos = g.field.Next(pos)
	}
	panic(fmt.Sprintf("game: body chain from head (%d,%d) has no terminator within %d steps", g.head.X, g.head.Y, limit))
}

// Step applies one tick of the simulation.
//
// The new head cell records the direction back toward the rest of the body,
// so the chain stays walkable from the head. When the candidate cell holds
// Terminator the snake is stepping into the slot its own tail is about to
// vacate; the tail must be dropped before the head is written or the cell
// would falsely read as occupied.
func (g *Game) Step(dir Direction) Outcome {
	g.moves++

	if !dir.IsMovement() {
		return Forfeit
	}

	candidate := g.head.MoveTowards(dir)
	if !g.field.InBounds(candidate) {
		return CrashedWall
	}

	if g.field.At(candidate) == Terminator {
		// Following our own tail at distance zero.
		g.field.DropTailFrom(g.head)
		g.field.Set(candidate, dir.Invert())
		g.head = candidate
		return Continued
	}

	if !g.field.IsFree(candidate) {
		return AteSnake
	}

	g.field.Set(candidate, dir.Invert())
	g.head = candidate

	if candidate == g.apple {
		g.applesEaten++
		apple, ok := g.field.RandomFreeCell(g.rng)
		if !ok {
			return Won
		}
		g.apple = apple
		return Continued
	}

	// No apple: advance the tail so the length stays constant.
	g.field.DropTailFrom(g.head)
	return Continued
}
