package mino

import (
	"fmt"
	"math/rand"
)

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Randomizer decides the shape and the initial number of clockwise
// quarter-turns of each spawned piece.
type Randomizer interface {
	Shape() Shape
	Rotations() int
}

// Uniform draws every shape with equal probability on every spawn.
type Uniform struct {
	r *rand.Rand
}

func NewUniform(seed int64) *Uniform {
	return &Uniform{r: rand.New(rand.NewSource(seed))}
}

func (u *Uniform) Shape() Shape {
	return Shape(u.r.Intn(ShapeCount))
}

func (u *Uniform) Rotations() int {
	return u.r.Intn(RotationStates)
}

// Bag deals all seven shapes in shuffled order before reshuffling.
type Bag struct {
	Shapes []Shape

	r *rand.Rand
	i int
}

func NewBag(seed int64) *Bag {
	b := &Bag{r: rand.New(rand.NewSource(seed))}
	b.shuffle()

	return b
}

func (b *Bag) Shape() Shape {
	s := b.Shapes[b.i]
	if b.i == len(b.Shapes)-1 {
		b.shuffle()

		b.i = 0
	} else {
		b.i++
	}

	return s
}

func (b *Bag) Rotations() int {
	return b.r.Intn(RotationStates)
}

func (b *Bag) shuffle() {
	if b.Shapes == nil {
		b.Shapes = make([]Shape, len(AllShapes))
	}
	copy(b.Shapes, AllShapes)

	b.r.Shuffle(len(b.Shapes), func(i, j int) { b.Shapes[i], b.Shapes[j] = b.Shapes[j], b.Shapes[i] })
}

func NewRandomizer(kind string, seed int64) (Randomizer, error) {
	switch kind {
	case "", RandomizerUniform:
		return NewUniform(seed), nil
	case RandomizerBag:
		return NewBag(seed), nil
	default:
		return nil, fmt.Errorf("unknown randomizer %q", kind)
	}
}
