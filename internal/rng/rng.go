// Package rng provides the seeded random stream shared by every operation
// of one pipeline run.
package rng

import (
	"math"
	"math/rand/v2"
)

// Source is a sequential, deterministic stream of random values.
// Operations draw from it in a fixed order, so one seed always reproduces
// the same mesh. A Source is not safe for concurrent use.
type Source struct {
	seed uint64
	gen  *rand.PCG
}

// New returns a stream seeded with seed.
func New(seed uint64) *Source {
	return &Source{
		seed: seed,
		gen:  rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// FreshSeed draws a new seed for a run that asked for one (seed -1).
// Seeds stay within uint32 so they round-trip through any UI field.
func FreshSeed() uint64 {
	return uint64(rand.Uint32())
}

// Seed returns the seed the stream was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Uint32 returns the next raw 32-bit value.
func (s *Source) Uint32() uint32 {
	return uint32(s.gen.Uint64() >> 32)
}

// Unit returns the next value in [0, 1], computed as Uint32 / MaxUint32.
func (s *Source) Unit() float32 {
	return float32(s.Uint32()) / float32(math.MaxUint32)
}
