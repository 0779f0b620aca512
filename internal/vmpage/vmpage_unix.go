//go:build unix

package vmpage

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func readPageSize() int {
	return unix.Getpagesize()
}

func request(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	return b, nil
}

func release(b []byte) error {
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("vmpage: munmap failed: %w", err)
	}
	return nil
}
