package mino

import (
	"sort"
	"strings"
)

// Mino is a set of block offsets relative to a piece origin.
type Mino []Point

// Rotate returns a rotated copy of the offsets. The receiver is not modified.
func (m Mino) Rotate(direction int) Mino {
	newMino := make(Mino, len(m))
	for i := range m {
		newMino[i] = m[i].Rotate(direction)
	}

	return newMino
}

func (m Mino) Equal(other Mino) bool {
	if len(m) != len(other) {
		return false
	}

	for i := 0; i < len(m); i++ {
		if !m.HasPoint(other[i]) || !other.HasPoint(m[i]) {
			return false
		}
	}

	return true
}

func (m Mino) HasPoint(p Point) bool {
	for _, mp := range m {
		if mp == p {
			return true
		}
	}

	return false
}

func (m Mino) String() string {
	newMino := make(Mino, len(m))
	copy(newMino, m)

	sort.Sort(newMino)

	var b strings.Builder
	for i := range newMino {
		if i > 0 {
			b.WriteRune(',')
		}

		b.WriteString(newMino[i].String())
	}

	return b.String()
}

func (m Mino) Len() int      { return len(m) }
func (m Mino) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m Mino) Less(i, j int) bool {
	return m[i].Y < m[j].Y || (m[i].Y == m[j].Y && m[i].X < m[j].X)
}
