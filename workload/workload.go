// Package workload generates the random inputs the timing routines operate
// on. A Generator is seeded once and reused for every size in a sweep, so a
// given seed always reproduces the same inputs.
package workload

import (
	"hash/fnv"
	mrand "math/rand"
	"time"
)

// Generator produces deterministic random inputs from a seed.
type Generator struct {
	seed int64
	rng  *mrand.Rand
}

// NewGenerator creates a Generator from the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed: seed,
		rng:  mrand.New(mrand.NewSource(seed)),
	}
}

// ResolveSeed returns seed, or a time-based seed if seed is zero.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}

	return seed
}

// Derive returns a seed for the named sub-workload. Different names give
// independent streams; the same name and parent seed give the same stream.
func Derive(seed int64, name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))

	return seed ^ int64(h.Sum64())
}

// Seed returns the seed the Generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Digit returns a random value in [0, 10).
func (g *Generator) Digit() int {
	return g.rng.Intn(10)
}

// Int32 returns a random value over the full int32 range, negatives
// included.
func (g *Generator) Int32() int32 {
	return int32(g.rng.Uint32())
}

// Index returns a random value in [0, n). It panics if n <= 0.
func (g *Generator) Index(n int) int {
	return g.rng.Intn(n)
}

// DigitPairs fills a and b with random digits, drawing a[i] then b[i] for
// each i in order. a and b must have equal length.
func (g *Generator) DigitPairs(a, b []int) {
	for i := range a {
		a[i] = g.Digit()
		b[i] = g.Digit()
	}
}

// Int32Pairs fills a and b with full-range values, drawing a[i] then b[i]
// for each i in order. a and b must have equal length.
func (g *Generator) Int32Pairs(a, b []int32) {
	for i := range a {
		a[i] = g.Int32()
		b[i] = g.Int32()
	}
}
