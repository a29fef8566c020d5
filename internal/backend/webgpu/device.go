package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/ember-ml/ember/internal/memory"
)

// storageUsage is the usage set for device allocations handed to the synced
// buffer: sampled into by compute kernels, copied both ways.
const storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// deviceBuffer is a pooled GPU allocation handed out through memory.Buffer.
type deviceBuffer struct {
	buf      *wgpu.Buffer
	size     int    // requested byte length
	alloc    uint64 // actual allocation, >= size and 4-byte aligned
	backend  *Backend
	released bool
}

// Size returns the requested byte length.
func (d *deviceBuffer) Size() int {
	return d.size
}

// Release returns the allocation to the buffer pool.
func (d *deviceBuffer) Release() {
	if d.released {
		return
	}
	d.released = true
	d.backend.bufferPool.Release(d.buf, d.alloc, storageUsage)
	d.backend.trackBufferRelease(d.alloc)
	d.buf = nil
}

// alignSize pads a byte length to the 4-byte COPY_BUFFER_ALIGNMENT WebGPU
// requires, with a 4-byte floor for zero-size allocations.
func alignSize(size int) uint64 {
	byteSize := uint64(size) //nolint:gosec // G115: size is validated non-negative.
	if byteSize < 4 {
		byteSize = 4
	}
	return (byteSize + 3) &^ 3
}

// Alloc allocates device memory through the buffer pool.
// Allocation failure is unrecoverable and panics inside the binding.
func (b *Backend) Alloc(size int) memory.Buffer {
	if size < 0 {
		panic(fmt.Sprintf("webgpu: negative allocation size %d", size))
	}
	alloc := alignSize(size)
	buf := b.bufferPool.Acquire(alloc, storageUsage)
	b.trackBufferAllocation(alloc)
	return &deviceBuffer{buf: buf, size: size, alloc: alloc, backend: b}
}

// Upload copies host bytes into a device allocation. The copy is submitted
// through a staging buffer and ordered on the queue before any later
// operation touching the same allocation.
func (b *Backend) Upload(dst memory.Buffer, src []byte) {
	d := b.own(dst)
	if len(src) == 0 {
		return
	}
	if len(src) > d.size {
		panic(fmt.Sprintf("webgpu: upload of %d bytes exceeds buffer of %d bytes", len(src), d.size))
	}

	staging := b.createBuffer(src, wgpu.BufferUsageCopySrc)
	defer staging.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(staging, 0, d.buf, 0, alignSize(len(src)))
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)
}

// Download copies a device allocation back to host bytes, blocking until the
// bytes are resident on the host.
func (b *Backend) Download(dst []byte, src memory.Buffer) {
	d := b.own(src)
	if len(dst) == 0 {
		return
	}
	if len(dst) > d.size {
		panic(fmt.Sprintf("webgpu: download of %d bytes exceeds buffer of %d bytes", len(dst), d.size))
	}

	data, err := b.readBuffer(d.buf, d.alloc)
	if err != nil {
		panic("webgpu: download failed: " + err.Error())
	}
	copy(dst, data[:len(dst)])
}

// own unwraps a Buffer created by this backend.
func (b *Backend) own(buf memory.Buffer) *deviceBuffer {
	d, ok := buf.(*deviceBuffer)
	if !ok {
		panic(fmt.Sprintf("webgpu: foreign device buffer %T", buf))
	}
	if d.released {
		panic("webgpu: use of released device buffer")
	}
	return d
}

// createBuffer creates a GPU buffer and uploads initial data, padded to the
// copy alignment.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := alignSize(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data)) //nolint:gosec // G115: parameter blocks are small fixed sizes.
	alignedSize := (size + 15) &^ 15 // Round up to 16-byte boundary

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	// Create staging buffer for reading (MAP_READ | COPY_DST)
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	// Copy from GPU buffer to staging buffer
	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	// Map staging buffer for reading; blocks until queued work has landed.
	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}
