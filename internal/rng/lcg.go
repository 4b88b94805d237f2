// Package rng provides the deterministic per-pixel random source used by
// the renderer. Determinism is a correctness property here, not a
// convenience: two renders of the same scene with the same resolution and
// sample count must produce byte-identical output, so every caller gets
// its randomness from an LCG seeded from the pixel index rather than from
// a shared, order-dependent global source.
package rng

import "math"

// modulus is 2^31 - 1, the Mersenne prime minstd_rand operates under.
const modulus = 1<<31 - 1

// multiplier is the minstd_rand multiplier (Park-Miller / C++11 minstd_rand).
const multiplier = 48271

// LCG is a linear congruential generator equivalent to C++'s
// std::minstd_rand: x[n+1] = 48271*x[n] mod (2^31-1).
type LCG struct {
	state uint64
}

// New creates an LCG seeded from iter. A zero seed is remapped to 1 since
// 0 is a fixed point of the recurrence and would produce an all-zero
// stream.
func New(iter int64) *LCG {
	seed := uint64(iter) % modulus
	if seed == 0 {
		seed = 1
	}
	return &LCG{state: seed}
}

// next advances the generator and returns the raw state in [1, modulus-1].
func (g *LCG) next() uint64 {
	g.state = (g.state * multiplier) % modulus
	return g.state
}

// Float64 returns a uniform sample in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.next()-1) / float64(modulus-1)
}

// Int63n returns a uniform sample in [0, n).
func (g *LCG) Int63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return int64(g.Float64() * float64(n))
}

// Vec2 returns two independent uniform samples in [0, 1).
func (g *LCG) Vec2() (float64, float64) {
	return g.Float64(), g.Float64()
}

// StdNormal draws a standard-normal sample via Box-Muller, used to build
// cosine-weighted hemisphere directions.
func (g *LCG) StdNormal() float64 {
	u1 := math.Max(g.Float64(), 1e-12)
	u2 := g.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
