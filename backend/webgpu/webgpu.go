// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU backend for synced buffers and device
// sampling.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via D3D12)
//   - macOS (via Metal)
//   - Linux (via Vulkan)
//
// Example:
//
//	import (
//	    "github.com/ember-ml/ember/backend/webgpu"
//	    "github.com/ember-ml/ember/memory"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    s := memory.New(4096, gpu)
//	    gpu.SeedRNG(1701)
//	    _ = gpu.FillUniform(s.MutableDeviceData(), 1024, -1, 1)
//	}
package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"

	internalwebgpu "github.com/ember-ml/ember/internal/backend/webgpu"
	"github.com/ember-ml/ember/memory"
	"github.com/ember-ml/ember/sampler"
)

// Backend represents the WebGPU backend implementation.
//
// Device buffers are pooled, host transfers go through staging buffers, and
// sampling runs as WGSL compute kernels keyed off a counter-based generator.
type Backend = internalwebgpu.Backend

// Compile-time checks that Backend serves both device roles.
var (
	_ memory.Device  = (*Backend)(nil)
	_ sampler.Device = (*Backend)(nil)
)

// MemoryStats represents GPU memory usage statistics.
type MemoryStats = internalwebgpu.MemoryStats

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}

// ListAdapters returns information about all available GPU adapters.
func ListAdapters() ([]*wgpu.AdapterInfoGo, error) {
	return internalwebgpu.ListAdapters()
}
