// Package sampler fills flat buffers with pseudo-random draws from Gaussian,
// Uniform and Bernoulli distributions. Host-executed forms live here and are
// driven by an rng.Engine; device-executed forms are provided by backends
// implementing the Device interface.
package sampler

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ember-ml/ember/internal/memory"
	"github.com/ember-ml/ember/internal/rng"
)

// Float covers the element types the host fills support.
type Float interface {
	~float32 | ~float64
}

// FillGaussian writes len(out) independent draws from Normal(mu, sigma^2).
// sigma must be non-negative; sigma == 0 degenerates to the constant mu.
func FillGaussian[T Float](e *rng.Engine, mu, sigma float64, out []T) error {
	if sigma < 0 {
		return fmt.Errorf("sampler: gaussian sigma must be non-negative, got %g", sigma)
	}
	if sigma == 0 {
		for i := range out {
			out[i] = T(mu)
		}
		return nil
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: e.Source()}
	for i := range out {
		out[i] = T(d.Rand())
	}
	return nil
}

// FillUniform writes len(out) independent draws uniform on [lower, upper].
// upper must be >= lower; the bounds are never silently swapped.
func FillUniform[T Float](e *rng.Engine, lower, upper float64, out []T) error {
	if upper < lower {
		return fmt.Errorf("sampler: uniform upper (%g) < lower (%g)", upper, lower)
	}
	if upper == lower {
		for i := range out {
			out[i] = T(lower)
		}
		return nil
	}
	d := distuv.Uniform{Min: lower, Max: upper, Src: e.Source()}
	for i := range out {
		out[i] = T(d.Rand())
	}
	return nil
}

// FillUniformUint writes len(out) independent draws uniform over the full
// uint32 range. Used for raw bit generation such as seeding and masks.
func FillUniformUint(e *rng.Engine, out []uint32) {
	for i := range out {
		out[i] = e.Uint32()
	}
}

// FillBernoulli writes len(out) independent draws in {0, 1}, where out[i] is
// 1 with probability p. p must lie in [0, 1].
func FillBernoulli(e *rng.Engine, p float64, out []int32) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("sampler: bernoulli p must be in [0, 1], got %g", p)
	}
	d := distuv.Bernoulli{P: p, Src: e.Source()}
	for i := range out {
		out[i] = int32(d.Rand())
	}
	return nil
}

// Device is implemented by backends that run the fills on the accelerator,
// writing directly into a device allocation obtained from
// (*memory.SyncedBuffer).MutableDeviceData. Device samples are float32
// (uint32 for FillUniformUint and FillBernoulli, which writes 0/1 words).
//
// Fills are synchronized with respect to subsequent host reads of the same
// buffer: no method returns while a device write affecting visible state is
// still in flight.
type Device interface {
	// SeedRNG deterministically resets the backend's device engine.
	SeedRNG(seed uint64)
	FillGaussian(dst memory.Buffer, n int, mu, sigma float64) error
	FillUniform(dst memory.Buffer, n int, lower, upper float64) error
	FillUniformUint(dst memory.Buffer, n int) error
	FillBernoulli(dst memory.Buffer, n int, p float64) error
}
