// Package cpu implements the host backend. It doubles as a simulated
// accelerator: "device" allocations are private byte slices invisible to the
// synced buffer's host side, which keeps the full state machine and the
// device fill paths exercised on machines without a GPU.
package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/memory"
	"github.com/ember-ml/ember/internal/rng"
	"github.com/ember-ml/ember/internal/sampler"
)

// Compile-time interface checks.
var (
	_ memory.Device  = (*Backend)(nil)
	_ sampler.Device = (*Backend)(nil)
)

// Backend simulates an accelerator in host memory. It carries its own
// deterministic engine, independent of the process-wide host engine.
type Backend struct {
	eng *rng.Engine
}

// New creates a CPU backend with an entropy-seeded device engine.
func New() *Backend {
	return &Backend{eng: rng.NewFromEntropy()}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "cpu"
}

// buffer is a simulated device allocation.
type buffer struct {
	data []byte
}

// Size returns the usable byte length.
func (d *buffer) Size() int {
	return len(d.data)
}

// Release frees the allocation.
func (d *buffer) Release() {
	d.data = nil
}

// Alloc allocates zeroed simulated device memory.
func (b *Backend) Alloc(size int) memory.Buffer {
	if size < 0 {
		panic(fmt.Sprintf("cpu: negative allocation size %d", size))
	}
	return &buffer{data: make([]byte, size)}
}

// Upload copies host bytes into a simulated device allocation.
func (b *Backend) Upload(dst memory.Buffer, src []byte) {
	copy(b.bytes(dst), src)
}

// Download copies a simulated device allocation back to host bytes.
func (b *Backend) Download(dst []byte, src memory.Buffer) {
	copy(dst, b.bytes(src))
}

// bytes unwraps a Buffer created by this backend.
func (b *Backend) bytes(buf memory.Buffer) []byte {
	d, ok := buf.(*buffer)
	if !ok {
		panic(fmt.Sprintf("cpu: foreign device buffer %T", buf))
	}
	return d.data
}

// SeedRNG deterministically resets the backend's device engine.
func (b *Backend) SeedRNG(seed uint64) {
	b.eng.Seed(seed)
}

// FillGaussian writes n float32 draws from Normal(mu, sigma^2) into dst.
func (b *Backend) FillGaussian(dst memory.Buffer, n int, mu, sigma float64) error {
	return sampler.FillGaussian(b.eng, mu, sigma, b.float32s(dst, n))
}

// FillUniform writes n float32 draws uniform on [lower, upper] into dst.
func (b *Backend) FillUniform(dst memory.Buffer, n int, lower, upper float64) error {
	return sampler.FillUniform(b.eng, lower, upper, b.float32s(dst, n))
}

// FillUniformUint writes n full-range uint32 draws into dst.
func (b *Backend) FillUniformUint(dst memory.Buffer, n int) error {
	sampler.FillUniformUint(b.eng, memory.AsUint32(b.words(dst, n)))
	return nil
}

// FillBernoulli writes n 0/1 words into dst, 1 with probability p.
func (b *Backend) FillBernoulli(dst memory.Buffer, n int, p float64) error {
	return sampler.FillBernoulli(b.eng, p, memory.AsInt32(b.words(dst, n)))
}

func (b *Backend) float32s(dst memory.Buffer, n int) []float32 {
	return memory.AsFloat32(b.words(dst, n))
}

// words bounds-checks a fill of n 32-bit elements against the allocation.
// Overrunning the destination is a caller bug, not a recoverable condition.
func (b *Backend) words(dst memory.Buffer, n int) []byte {
	data := b.bytes(dst)
	if n < 0 || n*4 > len(data) {
		panic(fmt.Sprintf("cpu: fill of %d elements exceeds buffer of %d bytes", n, len(data)))
	}
	return data[:n*4]
}
