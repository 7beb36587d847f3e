package spheretrace

// Rand is the deterministic random source behind scene generation. It is a
// 32-bit linear congruential generator; the same seed always yields the
// same draw sequence, on every platform and in every release. Scene
// generation is the only consumer and runs on a single goroutine, so Rand
// carries no locking.
//
// For cryptographically secure randomness, use crypto/rand instead; Rand
// exists purely for reproducible scenes.
type Rand struct {
	state uint32
}

// LCG parameters (Numerical Recipes). Changing these changes every
// generated scene, so they are fixed for the life of the format.
const (
	lcgMult = 1664525
	lcgInc  = 1013904223
)

// NewRand creates a generator seeded with the given value.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Uint32 advances the generator and returns the next 32-bit state.
func (r *Rand) Uint32() uint32 {
	r.state = r.state*lcgMult + lcgInc
	return r.state
}

// Float32 returns the next draw, uniformly distributed in [0, 1).
// The top 24 bits of the state are used so the result is an exact
// multiple of 2^-24 and round-trips through float32 without rounding.
func (r *Rand) Float32() float32 {
	return float32(r.Uint32()>>8) * (1.0 / (1 << 24))
}
