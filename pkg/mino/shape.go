package mino

// Shape is one of the seven tetromino kinds. Its value is the index into the
// color table.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeT
	ShapeLine
	ShapeL
	ShapeJL
	ShapeS
	ShapeZ

	ShapeCount = 7
)

// Offsets relative to the pivot of each shape.
var shapeOffsets = [ShapeCount]Mino{
	ShapeSquare: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	ShapeT:      {{0, 0}, {-1, 0}, {1, 0}, {0, 1}},
	ShapeLine:   {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	ShapeL:      {{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
	ShapeJL:     {{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
	ShapeS:      {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	ShapeZ:      {{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
}

var AllShapes = []Shape{ShapeSquare, ShapeT, ShapeLine, ShapeL, ShapeJL, ShapeS, ShapeZ}

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "Square"
	case ShapeT:
		return "T"
	case ShapeLine:
		return "Line"
	case ShapeL:
		return "L"
	case ShapeJL:
		return "JL"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// Offsets returns a fresh copy of the base offsets of the shape.
func (s Shape) Offsets() Mino {
	m := make(Mino, len(shapeOffsets[s]))
	copy(m, shapeOffsets[s])
	return m
}

// Block returns the cell value a locked piece of this shape leaves behind.
func (s Shape) Block() Block {
	return Block(s + 1)
}

// Rotates reports whether the shape takes part in rotation at all.
func (s Shape) Rotates() bool {
	return s != ShapeSquare
}
