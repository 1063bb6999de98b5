// Package noise wraps coherent gradient noise for smooth displacement.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Field is one seeded coherent-noise field in 3D.
type Field struct {
	p   *perlin.Perlin
	off [3]float64
}

// Single-octave settings: the fractal sum is done by Octaves, not by the
// noise library.
const (
	alpha = 2
	beta  = 2
)

// NewField returns a field seeded with seed.
func NewField(seed uint32) *Field {
	f := &Field{p: perlin.NewPerlin(alpha, beta, 1, int64(seed))}
	for axis := range f.off {
		f.off[axis] = cellOffset(seed, uint32(axis))
	}
	return f
}

// At samples the field.
//
// Gradient noise is zero on its integer lattice, so every sample is moved
// by a per-field offset in [0.25, 0.75) along each axis. Integer-aligned
// vertices then land inside a cell.
func (f *Field) At(x, y, z float64) float64 {
	return f.p.Noise3D(x+f.off[0], y+f.off[1], z+f.off[2])
}

// cellOffset hashes seed and axis to a fraction in [0.25, 0.75).
func cellOffset(seed, axis uint32) float64 {
	h := seed*0x9E3779B1 + (axis+1)*0x85EBCA77
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	return 0.25 + 0.5*float64(h)/(1<<32)
}

// Octaves is a stack of independent fields forming a fractal sum.
type Octaves []*Field

// Sample returns the normalized fractal sum at (x, y, z). Octave o is
// sampled at frequency 2^o and weighted by 0.5^o; the sum is divided by
// the total weight. An empty stack yields NaN (0/0).
func (o Octaves) Sample(x, y, z float64) float32 {
	var sum, acc float32
	for i, field := range o {
		weight := float32(math.Pow(0.5, float64(i)))
		freq := math.Pow(2, float64(i))

		sum += weight
		acc += weight * float32(field.At(x*freq, y*freq, z*freq))
	}
	return acc / sum
}
