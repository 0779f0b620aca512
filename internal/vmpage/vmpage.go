// Package vmpage wraps the OS anonymous virtual-memory mapping primitive:
// page-granularity mapping and unmapping of process address space.
//
// It never touches the libc heap allocator or sbrk/brk. Every allocation
// made above this package is backed by whole pages obtained here, so
// reclamation is trivial (whole-page unmap). On non-unix platforms the
// pages are plain Go slices instead (see vmpage_fallback.go).
package vmpage

import (
	"errors"
	"sync"
)

// ErrOutOfMemory indicates the OS refused to map the requested pages.
var ErrOutOfMemory = errors.New("vmpage: page mapping failed")

var (
	pageSizeOnce sync.Once
	pageSize     int
)

// Size returns the system's VM page size in bytes, read from the OS
// exactly once per process and cached thereafter.
func Size() int {
	pageSizeOnce.Do(func() {
		pageSize = readPageSize()
	})
	return pageSize
}

// Request maps n contiguous, zero-filled pages of read/write, private
// anonymous memory and returns the backing slice. No execute permission
// is ever requested: this package backs a data allocator, not a JIT.
func Request(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.New("vmpage: page count must be positive")
	}
	return request(n * Size())
}

// Release unmaps a region previously returned by Request. The caller
// guarantees b is exactly the slice (base and length) that Request
// returned; partial or offset unmapping is not supported.
func Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return release(b)
}
