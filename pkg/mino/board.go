package mino

import (
	"fmt"
	"strings"
)

// Board is the grid of locked cells. Row 0 is the top of the well.
type Board struct {
	W int // Width
	H int // Height

	M [][]Block // Rows
}

func NewBoard(w int, h int) *Board {
	b := &Board{W: w, H: h, M: make([][]Block, h)}
	for y := range b.M {
		b.M[y] = make([]Block, w)
	}

	return b
}

func (b *Board) InBounds(x int, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// IsOccupied reports whether (x, y) is off the board or holds a block.
func (b *Board) IsOccupied(x int, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}

	return b.M[y][x] != BlockNone
}

// Collides reports whether any block of p is out of bounds or overlaps a
// locked cell.
func (b *Board) Collides(p Piece) bool {
	for _, o := range p.Mino {
		if b.IsOccupied(p.X+o.X, p.Y+o.Y) {
			return true
		}
	}

	return false
}

// Place writes the blocks of p into the board. The caller must have checked
// that p does not collide.
func (b *Board) Place(p Piece) {
	block := p.Shape.Block()
	for _, o := range p.Mino {
		b.M[p.Y+o.Y][p.X+o.X] = block
	}
}

func (b *Board) Block(x int, y int) Block {
	if !b.InBounds(x, y) {
		return BlockNone
	}

	return b.M[y][x]
}

// SetBlock fills an empty in-bounds cell.
func (b *Board) SetBlock(x int, y int, block Block) bool {
	if !b.InBounds(x, y) || b.M[y][x] != BlockNone {
		return false
	}

	b.M[y][x] = block
	return true
}

func (b *Board) LineFilled(y int) bool {
	for x := 0; x < b.W; x++ {
		if b.M[y][x] == BlockNone {
			return false
		}
	}

	return true
}

// ClearFilled removes every completed row and returns how many were
// removed. Surviving rows keep their relative order and settle to the
// bottom; the same number of empty rows is inserted at the top.
func (b *Board) ClearFilled() int {
	kept := make([][]Block, 0, b.H)
	for y := 0; y < b.H; y++ {
		if !b.LineFilled(y) {
			kept = append(kept, b.M[y])
		}
	}

	cleared := b.H - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][]Block, 0, b.H)
	for i := 0; i < cleared; i++ {
		rows = append(rows, make([]Block, b.W))
	}
	b.M = append(rows, kept...)

	return cleared
}

// Fill pre-fills cells from a flat list of x,y pairs with garbage blocks.
func (b *Board) Fill(coords []int) error {
	if len(coords)%2 != 0 {
		return fmt.Errorf("odd number of coordinates: %d", len(coords))
	}

	for i := 0; i < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		if !b.InBounds(x, y) {
			return fmt.Errorf("cell %s out of bounds", Point{x, y})
		}

		b.M[y][x] = BlockGarbage
	}

	return nil
}

func (b *Board) Render() string {
	var s strings.Builder

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			s.WriteRune(b.M[y][x].Rune())
		}

		if y < b.H-1 {
			s.WriteRune('\n')
		}
	}

	return s.String()
}
