package mino

import (
	"strconv"
	"strings"
)

type Point struct {
	X, Y int
}

// Rotate turns the point a quarter-turn about the origin. Direction 1 is
// clockwise (y grows downward), -1 is counter-clockwise and 0 is a no-op.
func (p Point) Rotate(direction int) Point {
	if direction == 0 {
		return p
	}

	return Point{-p.Y * direction, p.X * direction}
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

func (p Point) String() string {
	var b strings.Builder
	b.WriteRune('(')
	b.WriteString(strconv.Itoa(p.X))
	b.WriteRune(',')
	b.WriteString(strconv.Itoa(p.Y))
	b.WriteRune(')')

	return b.String()
}
