// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/memory"
	"github.com/ember-ml/ember/sampler"
)

// Backend represents the CPU backend implementation.
//
// It simulates an accelerator with private host allocations, so synced
// buffers and device-side fills behave identically with or without a GPU.
type Backend = internalcpu.Backend

// Compile-time checks that Backend serves both device roles.
var (
	_ memory.Device  = (*Backend)(nil)
	_ sampler.Device = (*Backend)(nil)
)

// New creates a new CPU backend with an entropy-seeded generator.
//
// Example:
//
//	import (
//	    "github.com/ember-ml/ember/backend/cpu"
//	    "github.com/ember-ml/ember/memory"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    s := memory.New(1024, backend)
//	    _ = backend.FillGaussian(s.MutableDeviceData(), 256, 0, 1)
//	}
func New() *Backend {
	return internalcpu.New()
}
