// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sampler provides the public API for filling slices and device
// buffers with Gaussian, Uniform and Bernoulli draws.
//
// Host fills draw from an explicit rng.Engine:
//
//	e := rng.New(1701)
//	out := make([]float32, 10000)
//	if err := sampler.FillGaussian(e, 0, 1, out); err != nil {
//	    log.Fatal(err)
//	}
//
// Device fills go through a backend implementing sampler.Device and write
// 32-bit elements directly into device memory.
package sampler

import (
	"github.com/ember-ml/ember/internal/rng"
	"github.com/ember-ml/ember/internal/sampler"
)

// Float constrains host fills to floating-point element types.
type Float = sampler.Float

// Device is an accelerator that can run sampling kernels against its own
// buffers.
type Device = sampler.Device

// FillGaussian fills out with draws from Normal(mu, sigma^2). sigma must be
// non-negative; sigma == 0 fills with the constant mu.
func FillGaussian[T Float](e *rng.Engine, mu, sigma float64, out []T) error {
	return sampler.FillGaussian(e, mu, sigma, out)
}

// FillUniform fills out with draws uniform on [lower, upper]. upper must be
// greater than or equal to lower; equal bounds fill with that constant.
func FillUniform[T Float](e *rng.Engine, lower, upper float64, out []T) error {
	return sampler.FillUniform(e, lower, upper, out)
}

// FillUniformUint fills out with full-range uint32 draws.
func FillUniformUint(e *rng.Engine, out []uint32) {
	sampler.FillUniformUint(e, out)
}

// FillBernoulli fills out with 0/1 values, 1 with probability p. p must lie
// in [0, 1].
func FillBernoulli(e *rng.Engine, p float64, out []int32) error {
	return sampler.FillBernoulli(e, p, out)
}
