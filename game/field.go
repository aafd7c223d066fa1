package game

import (
	"fmt"
	"math/rand"
)

// Field is a dense W×H grid of Direction values indexed y*width+x.
//
// The set of cells holding a movement or Terminator value forms exactly one
// simple path: following each cell's stored direction from the head walks the
// body toward the tail and ends at the single Terminator cell. Accessors are
// bounds-unchecked; callers go through InBounds first.
type Field struct {
	width  int32
	height int32
	cells  []Direction
}

// NewField returns an empty field of the given dimensions.
func NewField(width, height int32) *Field {
	return &Field{
		width:  width,
		height: height,
		cells:  make([]Direction, int(width)*int(height)),
	}
}

func (f *Field) Width() int32  { return f.width }
func (f *Field) Height() int32 { return f.height }

// At returns the cell content. The caller guarantees p is in bounds.
func (f *Field) At(p Point) Direction {
	return f.cells[p.Y*f.width+p.X]
}

// Set writes the cell content. The caller guarantees p is in bounds.
func (f *Field) Set(p Point, d Direction) {
	f.cells[p.Y*f.width+p.X] = d
}

func (f *Field) InBounds(p Point) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

// IsFree reports whether the cell holds no body segment.
func (f *Field) IsFree(p Point) bool {
	return f.At(p) == Empty
}

// Next follows the body chain one step toward the tail.
func (f *Field) Next(p Point) Point {
	return p.MoveTowards(f.At(p))
}

// RandomFreeCell scans all cells in row-major order, wrapping, starting at a
// randomized offset so placement carries no bias toward low coordinates. For a
// fixed offset the scan order is the same every call, which keeps apple
// placement reproducible under a seeded source. Returns false if the board is
// full.
func (f *Field) RandomFreeCell(rng *rand.Rand) (Point, bool) {
	n := int(f.width) * int(f.height)
	offset := rng.Intn(n)
	for i := 0; i < n; i++ {
		idx := int32((offset + i) % n)
		p := Point{X: idx % f.width, Y: idx / f.width}
		if f.IsFree(p) {
			return p, true
		}
	}
	return Point{}, false
}

// DropTailFrom walks the chain from head until it finds the cell immediately
// before the Terminator cell, marks that cell as the new chain end, and
// vacates the old tail. Returns the vacated coordinate.
//
// A chain that does not reach a Terminator within W·H steps is corrupt; that
// is a programming defect, not a game event, so it panics rather than loop
// forever.
func (f *Field) DropTailFrom(head Point) Point {
	limit := int(f.width) * int(f.height)
	pos := head
	for i := 0; i <= limit; i++ {
		next := f.Next(pos)
		if f.At(next) == Terminator {
			f.Set(pos, Terminator)
			f.Set(next, Empty)
			return next
		}
		pos = next
	}
	panic(fmt.Sprintf("game: body chain from (%d,%d) has no terminator within %d steps", head.X, head.Y, limit))
}
