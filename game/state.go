// Package game implements the board state for an autonomous snake match.
//
// The snake's body is not stored as an ordered slice of segments. Instead the
// board itself is the body: each occupied cell stores the direction from that
// cell toward the next segment (toward the tail), forming an implicit linked
// list inside a dense W×H array. The cell at the tail end of the chain holds
// Terminator, which is the stop condition for every chain walk.
package game

import "math/rand"

// Point is a board coordinate.
// (0,0) is top-left; Up decreases Y, Down increases Y.
type Point struct {
	X int32
	Y int32
}

// MoveTowards returns the point one step in the given direction.
// Non-movement directions leave the point unchanged.
func (p Point) MoveTowards(d Direction) Point {
	switch d {
	case Left:
		return Point{X: p.X - 1, Y: p.Y}
	case Right:
		return Point{X: p.X + 1, Y: p.Y}
	case Up:
		return Point{X: p.X, Y: p.Y - 1}
	case Down:
		return Point{X: p.X, Y: p.Y + 1}
	}
	return p
}

// RandomPoint returns a uniformly random coordinate on a w×h board.
func RandomPoint(rng *rand.Rand, w, h int32) Point {
	return Point{X: int32(rng.Intn(int(w))), Y: int32(rng.Intn(int(h)))}
}

// Direction is both a move command (the four cardinal values) and the content
// of a Field cell (any value, where Empty marks free space and Terminator
// marks the tail end of the body chain).
type Direction uint8

const (
	Empty Direction = iota // zero value: a fresh Field is all free cells
	Left
	Right
	Up
	Down
	Terminator
)

// Invert swaps Left/Right and Up/Down. Empty and Terminator invert to
// themselves.
func (d Direction) Invert() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	return d
}

// IsMovement reports whether d is one of the four cardinal move commands.
func (d Direction) IsMovement() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	switch d {
	case Empty:
		return "empty"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Terminator:
		return "terminator"
	}
	return "invalid"
}

// Outcome is the result of one simulation step.
type Outcome uint8

const (
	Continued   Outcome = iota
	CrashedWall         // head left the board
	AteSnake            // head entered an occupied cell
	Forfeit             // strategy returned a non-movement direction
	Won                 // last apple eaten, board full
)

// Terminal reports whether the outcome ends the match.
func (o Outcome) Terminal() bool {
	return o != Continued
}

func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case CrashedWall:
		return "crashed_wall"
	case AteSnake:
		return "ate_snake"
	case Forfeit:
		return "forfeit"
	case Won:
		return "won"
	}
	return "invalid"
}
