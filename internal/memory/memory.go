// Package memory implements the dual-location byte buffer that keeps a host
// copy and an accelerator copy of the same data consistent on demand.
package memory

import "fmt"

// Head identifies which location currently holds the authoritative copy of
// a buffer's contents.
type Head int

// Buffer synchronization states.
const (
	// Uninitialized means neither side has content yet.
	Uninitialized Head = iota
	// AtHost means only the host copy is guaranteed current.
	AtHost
	// AtDevice means only the device copy is guaranteed current.
	AtDevice
	// Synced means host and device copies are byte-identical.
	Synced
)

// String returns a human-readable state name.
func (h Head) String() string {
	switch h {
	case Uninitialized:
		return "Uninitialized"
	case AtHost:
		return "AtHost"
	case AtDevice:
		return "AtDevice"
	case Synced:
		return "Synced"
	default:
		return "Unknown"
	}
}

// Buffer is an opaque device-resident allocation handle.
type Buffer interface {
	// Size returns the usable byte length of the allocation.
	Size() int
	// Release frees the allocation. Releasing twice is a no-op.
	Release()
}

// Device provides the allocation and transfer primitives for one
// accelerator. Upload and Download are synchronous: when the call returns
// the destination holds the full contents. Unrecoverable allocation or
// transfer failures panic; there is nothing safe to do with a half-copied
// buffer downstream.
type Device interface {
	Name() string
	Alloc(size int) Buffer
	Upload(dst Buffer, src []byte)
	Download(dst []byte, src Buffer)
}

// SyncedBuffer owns at most one host allocation and at most one device
// allocation of the same fixed byte size, lazily materializing each side and
// copying between them on demand.
//
// The head state machine enforces that at most one side is considered fresh
// unless both are known byte-identical (Synced). Mutable accessors mark the
// opposite side stale even if the caller never writes through the returned
// view; there is no reliable way to detect non-mutation at this layer.
//
// A SyncedBuffer is shared mutable state and performs no locking; concurrent
// use without external synchronization is the caller's responsibility.
type SyncedBuffer struct {
	size       int
	head       Head
	dev        Device
	host       []byte
	devBuf     Buffer
	ownsHost   bool
	ownsDevice bool
}

// New creates an empty buffer of the given byte size bound to dev. Nothing
// is allocated until a view is requested. dev may be nil for host-only
// buffers; device accessors then panic.
func New(size int, dev Device) *SyncedBuffer {
	if size < 0 {
		panic(fmt.Sprintf("memory: negative buffer size %d", size))
	}
	return &SyncedBuffer{size: size, dev: dev}
}

// Size returns the fixed byte length of the buffer.
func (s *SyncedBuffer) Size() int {
	return s.size
}

// Head returns the current synchronization state.
func (s *SyncedBuffer) Head() Head {
	return s.head
}

// Device returns the device this buffer is bound to, or nil.
func (s *SyncedBuffer) Device() Device {
	return s.dev
}

// OwnsHost reports whether the host allocation is owned by the buffer
// (false after SetHostData injected caller-owned memory).
func (s *SyncedBuffer) OwnsHost() bool {
	return s.ownsHost
}

// OwnsDevice reports whether the device allocation is owned by the buffer.
func (s *SyncedBuffer) OwnsDevice() bool {
	return s.ownsDevice
}

// toHost materializes the host allocation and copies device->host when the
// device side is authoritative.
func (s *SyncedBuffer) toHost() {
	switch s.head {
	case Uninitialized:
		if s.host == nil {
			s.host = make([]byte, s.size)
			s.ownsHost = true
		}
		s.head = AtHost
	case AtDevice:
		if s.host == nil {
			s.host = make([]byte, s.size)
			s.ownsHost = true
		}
		s.dev.Download(s.host, s.devBuf)
		s.head = Synced
	}
}

// toDevice materializes the device allocation and copies host->device when
// the host side is authoritative.
func (s *SyncedBuffer) toDevice() {
	if s.dev == nil {
		panic("memory: no device bound to buffer")
	}
	switch s.head {
	case Uninitialized:
		if s.devBuf == nil {
			s.devBuf = s.dev.Alloc(s.size)
			s.ownsDevice = true
		}
		s.head = AtDevice
	case AtHost:
		if s.devBuf == nil {
			s.devBuf = s.dev.Alloc(s.size)
			s.ownsDevice = true
		}
		s.dev.Upload(s.devBuf, s.host)
		s.head = Synced
	}
}

// HostData returns a read-only view of the host copy, synchronizing from the
// device if needed. The caller must not write through it; use
// MutableHostData for mutation.
func (s *SyncedBuffer) HostData() []byte {
	s.toHost()
	return s.host
}

// MutableHostData returns a writable host view and marks the device copy
// stale.
func (s *SyncedBuffer) MutableHostData() []byte {
	s.toHost()
	s.head = AtHost
	return s.host
}

// DeviceData returns a read-only handle to the device copy, synchronizing
// from the host if needed.
func (s *SyncedBuffer) DeviceData() Buffer {
	s.toDevice()
	return s.devBuf
}

// MutableDeviceData returns a writable device handle and marks the host copy
// stale. Device-side fills are expected to write through this handle.
func (s *SyncedBuffer) MutableDeviceData() Buffer {
	s.toDevice()
	s.head = AtDevice
	return s.devBuf
}

// SetHostData replaces the host allocation with a caller-owned slice. The
// buffer borrows the memory and will never free it. The slice length must
// match the buffer size exactly.
func (s *SyncedBuffer) SetHostData(p []byte) {
	if len(p) != s.size {
		panic(fmt.Sprintf("memory: SetHostData length %d != buffer size %d", len(p), s.size))
	}
	s.host = p
	s.ownsHost = false
	s.head = AtHost
}

// SetDeviceData replaces the device allocation with a caller-supplied
// buffer, releasing any previously owned device allocation first. Ownership
// transfers only when owned is true.
func (s *SyncedBuffer) SetDeviceData(buf Buffer, owned bool) {
	if s.dev == nil {
		panic("memory: no device bound to buffer")
	}
	if buf.Size() < s.size {
		panic(fmt.Sprintf("memory: SetDeviceData buffer of %d bytes smaller than buffer size %d", buf.Size(), s.size))
	}
	if s.ownsDevice && s.devBuf != nil {
		s.devBuf.Release()
	}
	s.devBuf = buf
	s.ownsDevice = owned
	s.head = AtDevice
}

// Release frees owned allocations and returns the buffer to the
// Uninitialized state. Borrowed (injected) memory is left to its owner.
func (s *SyncedBuffer) Release() {
	if s.ownsDevice && s.devBuf != nil {
		s.devBuf.Release()
	}
	s.devBuf = nil
	s.ownsDevice = false
	s.host = nil
	s.ownsHost = false
	s.head = Uninitialized
}
