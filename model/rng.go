package model

import "math/rand/v2"

// RandomSource supplies the random bits used by Randomize. *rand.Rand from
// math/rand/v2 satisfies it; tests can supply a fixed sequence.
type RandomSource interface {
	IntN(n int) int
}

// NewRandomSource returns a PCG-backed source seeded with seed
func NewRandomSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Randomize sets every cell alive or dead with equal probability
func (g *Grid) Randomize(src RandomSource) {
	for row := range g.rows {
		for col := range g.cols {
			g.cells[row][col] = src.IntN(2) == 1
		}
	}
}
