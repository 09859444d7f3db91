package mem

import (
	"fmt"
	"unsafe"

	"github.com/andatr/segregated-storage/internal/align"
)

// Provider supplies the raw memory that storages carve into pages.
//
// Acquire returns a buffer of exactly size bytes whose first byte is aligned
// to alignment. Release takes back a buffer previously returned by Acquire on
// the same provider. Implementations must be safe for concurrent use; the
// engine only calls them while holding its growth lock, but nothing stops an
// application from sharing one provider between many storages.
type Provider interface {
	Acquire(size, alignment int) ([]byte, error)
	Release(buf []byte)
}

// checkArgs validates the common Acquire preconditions.
func checkArgs(size, alignment int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size %d", ErrBadArgument, size)
	}
	if !align.IsPow2(alignment) {
		return fmt.Errorf("%w: alignment %d is not a power of two", ErrBadArgument, alignment)
	}
	return nil
}

// System is a Provider backed by the Go heap.
//
// The runtime guarantees only modest natural alignment for byte slices, so
// Acquire over-allocates by alignment-1 bytes and returns the aligned window.
// The window keeps the whole backing array reachable, which is what makes the
// no-op Release correct: memory is reclaimed by the collector when the owning
// storage drops its page chain.
type System struct{}

// Acquire returns an aligned size-byte buffer from the Go heap.
func (System) Acquire(size, alignment int) ([]byte, error) {
	if err := checkArgs(size, alignment); err != nil {
		return nil, err
	}
	total, ok := align.AddOverflowSafe(size, alignment-1)
	if !ok {
		return nil, fmt.Errorf("%w: size %d alignment %d", ErrBadArgument, size, alignment)
	}
	buf := make([]byte, total)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	off := int(align.UpPtr(base, uintptr(alignment)) - base)
	return buf[off : off+size : off+size], nil
}

// Release is a no-op; the garbage collector owns the backing array.
func (System) Release(buf []byte) {}
