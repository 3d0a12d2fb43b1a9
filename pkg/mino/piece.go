package mino

import (
	"fmt"
)

const RotationStates = 4

const (
	RotateCW  = 1
	RotateCCW = -1
)

// Piece is the falling tetromino. It is a plain value: copying a Piece
// yields an independent piece, which is how previews are simulated.
type Piece struct {
	Point
	Mino
	Shape Shape
}

func NewPiece(s Shape, loc Point) Piece {
	return Piece{Point: loc, Mino: s.Offsets(), Shape: s}
}

func (p Piece) String() string {
	return fmt.Sprintf("%s@%s[%s]", p.Shape, p.Point, p.Mino)
}

// RotatedOffsets returns the offsets the piece would have after one step of
// rotation in direction. Square pieces and direction 0 return the current
// offsets unchanged.
func (p Piece) RotatedOffsets(direction int) Mino {
	if direction == 0 || !p.Shape.Rotates() {
		return p.Mino
	}

	return p.Mino.Rotate(direction)
}

// Moved returns a copy of the piece translated by (dx, dy) and rotated one
// step in direction rotation.
func (p Piece) Moved(dx int, dy int, rotation int) Piece {
	return Piece{
		Point: Point{p.X + dx, p.Y + dy},
		Mino:  p.RotatedOffsets(rotation),
		Shape: p.Shape,
	}
}

// Blocks returns the absolute board coordinates covered by the piece.
func (p Piece) Blocks() []Point {
	points := make([]Point, len(p.Mino))
	for i, o := range p.Mino {
		points[i] = p.Point.Add(o)
	}

	return points
}
