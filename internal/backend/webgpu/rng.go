package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/ember-ml/ember/internal/memory"
)

// SeedRNG deterministically resets the device generator. The draw counter
// restarts at zero, so an identical seed replays an identical device
// sequence. Without an explicit call the generator keys off the zero seed.
func (b *Backend) SeedRNG(seed uint64) {
	b.rngSeed = uint32(seed) ^ uint32(seed>>32) //nolint:gosec // G115: deliberate fold of the 64-bit seed.
	b.rngOffset = 0
}

// FillGaussian writes n float32 draws from Normal(mu, sigma^2) into dst.
// sigma must be non-negative; sigma == 0 degenerates to the constant mu.
func (b *Backend) FillGaussian(dst memory.Buffer, n int, mu, sigma float64) error {
	if sigma < 0 {
		return fmt.Errorf("webgpu: gaussian sigma must be non-negative, got %g", sigma)
	}
	return b.runFill("rng_gaussian", rngGaussianShader, dst, n, float32(mu), float32(sigma))
}

// FillUniform writes n float32 draws uniform on [lower, upper] into dst.
// upper must be >= lower; the bounds are never silently swapped.
func (b *Backend) FillUniform(dst memory.Buffer, n int, lower, upper float64) error {
	if upper < lower {
		return fmt.Errorf("webgpu: uniform upper (%g) < lower (%g)", upper, lower)
	}
	return b.runFill("rng_uniform", rngUniformShader, dst, n, float32(lower), float32(upper))
}

// FillUniformUint writes n full-range uint32 draws into dst.
func (b *Backend) FillUniformUint(dst memory.Buffer, n int) error {
	return b.runFill("rng_uniform_uint", rngUniformUintShader, dst, n, 0, 0)
}

// FillBernoulli writes n 0/1 words into dst, 1 with probability p.
// p must lie in [0, 1].
func (b *Backend) FillBernoulli(dst memory.Buffer, n int, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("webgpu: bernoulli p must be in [0, 1], got %g", p)
	}
	return b.runFill("rng_bernoulli", rngBernoulliShader, dst, n, float32(p), 0)
}

// runFill dispatches one sampling kernel over n 32-bit elements of dst and
// advances the draw counter. Submission order on the queue makes the fill
// visible to any later copy of the same allocation, so the fill is
// synchronized with respect to subsequent host reads.
func (b *Backend) runFill(name, code string, dst memory.Buffer, n int, p0, p1 float32) error {
	d := b.own(dst)
	if n < 0 || n*4 > d.size {
		panic(fmt.Sprintf("webgpu: fill of %d elements exceeds buffer of %d bytes", n, d.size))
	}
	if n == 0 {
		return nil
	}

	shader := b.compileShader(name, code)
	pipeline := b.getOrCreatePipeline(name, shader)

	// Params layout mirrors the WGSL struct: n, seed, offset, pad, a, b.
	params := make([]byte, 32)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n)) //nolint:gosec // G115: n bounded by the allocation size.
	binary.LittleEndian.PutUint32(params[4:8], b.rngSeed)
	binary.LittleEndian.PutUint32(params[8:12], b.rngOffset)
	binary.LittleEndian.PutUint32(params[16:20], math.Float32bits(p0))
	binary.LittleEndian.PutUint32(params[20:24], math.Float32bits(p1))
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, d.buf, 0, d.alloc),
		wgpu.BufferBindingEntry(1, bufferParams, 0, 32),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)

	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	//nolint:gosec // G115: workgroup count is non-negative.
	workgroups := uint32((n + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	b.rngOffset += uint32(n) //nolint:gosec // G115: n bounded by the allocation size.
	return nil
}
