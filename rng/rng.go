// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package rng provides the public API for seeded pseudo-random engines.
package rng

import (
	"github.com/ember-ml/ember/internal/rng"
)

// Engine is a seedable pseudo-random generator. It is not safe for
// concurrent use; give each goroutine its own engine.
type Engine = rng.Engine

// New creates an engine seeded with seed.
func New(seed uint64) *Engine {
	return rng.New(seed)
}

// NewFromEntropy creates an engine seeded from the operating system's
// entropy source.
func NewFromEntropy() *Engine {
	return rng.NewFromEntropy()
}

// Default returns the process-wide engine.
func Default() *Engine {
	return rng.Default()
}

// SetRandomSeed reseeds the process-wide engine, making subsequent draws
// from Default deterministic.
func SetRandomSeed(seed uint64) {
	rng.SetRandomSeed(seed)
}
