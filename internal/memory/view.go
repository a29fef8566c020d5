package memory

import (
	"fmt"
	"unsafe"
)

// AsFloat32 interprets a host view as []float32.
// Panics if the byte length is not a multiple of 4.
func AsFloat32(b []byte) []float32 {
	if len(b)%4 != 0 {
		panic(fmt.Sprintf("memory: byte length %d is not a multiple of 4", len(b)))
	}
	if len(b) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length checked above.
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}

// AsFloat64 interprets a host view as []float64.
// Panics if the byte length is not a multiple of 8.
func AsFloat64(b []byte) []float64 {
	if len(b)%8 != 0 {
		panic(fmt.Sprintf("memory: byte length %d is not a multiple of 8", len(b)))
	}
	if len(b) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length checked above.
	return unsafe.Slice((*float64)(unsafe.Pointer(&b[0])), len(b)/8)
}

// AsInt32 interprets a host view as []int32.
// Panics if the byte length is not a multiple of 4.
func AsInt32(b []byte) []int32 {
	if len(b)%4 != 0 {
		panic(fmt.Sprintf("memory: byte length %d is not a multiple of 4", len(b)))
	}
	if len(b) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length checked above.
	return unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), len(b)/4)
}

// AsUint32 interprets a host view as []uint32.
// Panics if the byte length is not a multiple of 4.
func AsUint32(b []byte) []uint32 {
	if len(b)%4 != 0 {
		panic(fmt.Sprintf("memory: byte length %d is not a multiple of 4", len(b)))
	}
	if len(b) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length checked above.
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4)
}
