package mem

import "errors"

var (
	// ErrOutOfMemory indicates that the provider could not satisfy an
	// Acquire request.
	ErrOutOfMemory = errors.New("mem: out of memory")

	// ErrBadArgument indicates a non-positive size or an alignment that is
	// not a power of two.
	ErrBadArgument = errors.New("mem: bad argument")
)
