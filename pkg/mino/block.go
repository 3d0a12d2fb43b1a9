package mino

// Block is the value of a single board cell. BlockNone is empty; any other
// value is occupied and names the color index (offset by one) of the shape
// that left it there.
type Block int

const (
	BlockNone Block = iota
	BlockSquare
	BlockT
	BlockLine
	BlockL
	BlockJL
	BlockS
	BlockZ
	BlockGarbage
)

func (b Block) String() string {
	return string(b.Rune())
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockGarbage:
		return '▓'
	case BlockSquare, BlockT, BlockLine, BlockL, BlockJL, BlockS, BlockZ:
		return '█'
	default:
		return '?'
	}
}

// ColorIndex returns the index into a seven-entry color table, or -1 for
// empty and garbage cells.
func (b Block) ColorIndex() int {
	if b < BlockSquare || b > BlockZ {
		return -1
	}

	return int(b) - 1
}
