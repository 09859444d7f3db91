//go:build !unix

package mem

// Mmap degrades to the System provider when anonymous mappings are not
// available.
type Mmap struct{}

// Acquire allocates from the Go heap.
func (Mmap) Acquire(size, alignment int) ([]byte, error) {
	return System{}.Acquire(size, alignment)
}

// Release is a no-op, matching System.
func (Mmap) Release(buf []byte) {}
