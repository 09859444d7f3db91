//go:build unix

package mem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mmap is a Provider backed by anonymous private mappings.
//
// Mappings start on a page boundary, so any alignment up to the system page
// size is satisfied without over-allocation, and Release returns the pages to
// the operating system immediately instead of waiting for the collector.
type Mmap struct{}

// Acquire maps an anonymous region of exactly size bytes.
func (Mmap) Acquire(size, alignment int) ([]byte, error) {
	if err := checkArgs(size, alignment); err != nil {
		return nil, err
	}
	if alignment > os.Getpagesize() {
		return nil, fmt.Errorf("%w: alignment %d exceeds page size", ErrBadArgument, alignment)
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrOutOfMemory, size, err)
	}
	return buf, nil
}

// Release unmaps a buffer returned by Acquire. Unmap errors are ignored; the
// buffer is unusable afterwards either way.
func (Mmap) Release(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = unix.Munmap(buf)
}
