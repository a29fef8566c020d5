// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package memory provides the public API for synchronized host/device buffers.
//
// A SyncedBuffer owns one logical allocation that may live on the host, on an
// accelerator, or on both at once. Accessors lazily allocate and copy so that
// callers never issue transfers by hand:
//
//	backend := cpu.New()
//	s := memory.New(1024, backend)
//	copy(s.MutableHostData(), payload) // head moves to the host
//	buf := s.DeviceData()              // uploads once, head becomes synced
package memory

import (
	"github.com/ember-ml/ember/internal/memory"
)

// Head identifies which side of a synced buffer holds the current bytes.
type Head = memory.Head

// Head states.
const (
	Uninitialized Head = memory.Uninitialized
	AtHost        Head = memory.AtHost
	AtDevice      Head = memory.AtDevice
	Synced        Head = memory.Synced
)

// Buffer is an opaque device allocation.
type Buffer = memory.Buffer

// Device abstracts an accelerator that can allocate device memory and move
// bytes between it and the host.
type Device = memory.Device

// SyncedBuffer is a dual-location allocation with lazy synchronization.
type SyncedBuffer = memory.SyncedBuffer

// New creates a synced buffer of size bytes backed by dev. No memory is
// allocated until the first accessor runs. A nil dev restricts the buffer to
// its host side.
func New(size int, dev Device) *SyncedBuffer {
	return memory.New(size, dev)
}

// AsFloat32 reinterprets host bytes as float32 values without copying.
func AsFloat32(b []byte) []float32 { return memory.AsFloat32(b) }

// AsFloat64 reinterprets host bytes as float64 values without copying.
func AsFloat64(b []byte) []float64 { return memory.AsFloat64(b) }

// AsInt32 reinterprets host bytes as int32 values without copying.
func AsInt32(b []byte) []int32 { return memory.AsInt32(b) }

// AsUint32 reinterprets host bytes as uint32 values without copying.
func AsUint32(b []byte) []uint32 { return memory.AsUint32(b) }
