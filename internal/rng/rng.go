// Package rng provides the deterministic pseudo-random engines that drive
// sampling. One engine is bound to the host; each accelerator backend keeps
// its own independent engine. Identical seeds replay identical sequences on
// the same engine, but host and device engines are not required to agree.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"

	xrand "golang.org/x/exp/rand"
)

// Engine is a deterministic pseudo-random generator built on a PCG source.
// Its output sequence is fully determined by the last seed.
//
// Engines are shared mutable state. This package performs no locking;
// concurrent use from multiple goroutines without external synchronization
// is the caller's responsibility.
type Engine struct {
	rnd  *xrand.Rand
	seed uint64
}

// New creates an engine seeded with the given value.
func New(seed uint64) *Engine {
	return &Engine{rnd: xrand.New(xrand.NewSource(seed)), seed: seed}
}

// NewFromEntropy creates an engine seeded from system entropy. This is the
// production default; reproducible paths must call Seed explicitly instead.
func NewFromEntropy() *Engine {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("rng: entropy source unavailable: " + err.Error())
	}
	return New(binary.LittleEndian.Uint64(b[:]))
}

// Seed deterministically resets the generator state.
func (e *Engine) Seed(v uint64) {
	e.seed = v
	e.rnd.Seed(v)
}

// LastSeed returns the seed the engine was most recently reset with.
func (e *Engine) LastSeed() uint64 {
	return e.seed
}

// Uint32 returns a uniform draw over the full uint32 range.
func (e *Engine) Uint32() uint32 {
	return uint32(e.rnd.Uint64() >> 32) //nolint:gosec // G115: deliberate truncation of a full-width draw.
}

// Uint64 returns a uniform draw over the full uint64 range.
func (e *Engine) Uint64() uint64 {
	return e.rnd.Uint64()
}

// Float64 returns a uniform draw in [0, 1).
func (e *Engine) Float64() float64 {
	return e.rnd.Float64()
}

// NormFloat64 returns a standard normal draw.
func (e *Engine) NormFloat64() float64 {
	return e.rnd.NormFloat64()
}

// Source exposes the engine as a rand.Source for gonum's distuv
// distributions. Draws through the source advance the engine.
func (e *Engine) Source() xrand.Source {
	return e.rnd
}

// defaultEngine is the process-wide host engine. Callers wanting
// reproducibility reseed it through SetRandomSeed.
var defaultEngine = NewFromEntropy()

// Default returns the process-wide host engine.
func Default() *Engine {
	return defaultEngine
}

// SetRandomSeed deterministically reseeds the process-wide host engine.
// By convention callers also propagate the seed to the active device engine
// via the backend's SeedRNG.
func SetRandomSeed(v uint64) {
	defaultEngine.Seed(v)
}
