package raw

import "errors"

var (
	// ErrPageSize indicates that the configured page size cannot fit a
	// single slot of the storage's layout.
	ErrPageSize = errors.New("raw: page size must fit at least one slot")

	// ErrBadLayout indicates a negative size or an alignment that is not a
	// power of two.
	ErrBadLayout = errors.New("raw: bad layout")

	// ErrClosed indicates an Acquire on a storage after Close.
	ErrClosed = errors.New("raw: storage is closed")
)
