//go:build unix

package pool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapSource allocates blocks as anonymous private mappings, keeping pool
// memory out of the Go heap entirely. Blocks must go back through Free (or
// RawPool.Close) to be unmapped.
type MmapSource struct{}

var _ BlockSource = MmapSource{}

func (MmapSource) Alloc(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("pool: mmap %d bytes: %w", size, err)
	}
	return b, nil
}

func (MmapSource) Free(b []byte) error {
	if b == nil {
		return nil
	}
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("pool: munmap: %w", err)
	}
	return nil
}
