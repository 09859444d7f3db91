package sgs

import (
	"unsafe"

	"github.com/andatr/segregated-storage/sgs/mem"
	"github.com/andatr/segregated-storage/sgs/raw"
)

// Config controls page sizing and the memory source for typed and multi-type
// storage. The zero value (or a nil pointer) selects the defaults: 4KB first
// pages from the Go heap.
type Config struct {
	// PageBytes is the size of the first page of each storage. Advisory:
	// growth doubles it.
	PageBytes int

	// Provider supplies page memory. Defaults to mem.System.
	Provider mem.Provider
}

func (c *Config) rawConfig() *raw.Config {
	if c == nil {
		return nil
	}
	return &raw.Config{PageBytes: c.PageBytes, Provider: c.Provider}
}

// Storage is a thread-safe fixed-size allocator for objects of type T.
type Storage[T any] struct {
	raw  *raw.Storage
	dtor func(*T)
}

// Option configures a Storage at construction time.
type Option[T any] func(*Storage[T])

// WithDestructor installs a destructor run by Free (and by the release path
// of handles) just before the slot returns to the free list. The destructor
// must not panic.
func WithDestructor[T any](dtor func(*T)) Option[T] {
	return func(s *Storage[T]) { s.dtor = dtor }
}

// New creates a Storage for T. cfg may be nil for defaults.
//
// T must not contain Go pointers (no pointers, strings, slices, maps,
// channels, funcs, or interfaces, at any nesting depth): slot bodies live in
// provider byte buffers the garbage collector never scans, so a reference
// stored there would not keep its referent alive. Pointer-bearing T is
// rejected with ErrPointerType; use sgs/pool for such types.
func New[T any](cfg *Config, opts ...Option[T]) (*Storage[T], error) {
	if err := checkPointerFree[T](); err != nil {
		return nil, err
	}
	rs, err := raw.New(raw.LayoutOf[T](), cfg.rawConfig())
	if err != nil {
		return nil, err
	}
	s := &Storage[T]{raw: rs}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Alloc acquires a slot and constructs a T in it: the body is zeroed, then
// init runs (nil init leaves the zero value). If init returns an error or
// panics, the slot is released first and the failure propagates unchanged.
func (s *Storage[T]) Alloc(init func(*T) error) (*T, error) {
	return construct(s.raw, init)
}

// Free destructs the object and returns its slot to the free list. p must
// have come from this storage and must not be freed twice.
func (s *Storage[T]) Free(p *T) {
	if s.dtor != nil {
		s.dtor(p)
	}
	s.raw.Release(unsafe.Pointer(p))
}

// AllocUnique allocates like Alloc and wraps the object in an exclusive
// handle whose Release calls Free.
func (s *Storage[T]) AllocUnique(init func(*T) error) (Unique[T], error) {
	p, err := s.Alloc(init)
	if err != nil {
		return Unique[T]{}, err
	}
	return Unique[T]{ptr: p, free: s.Free}, nil
}

// AllocShared allocates like Alloc and wraps the object in a
// reference-counted handle; the slot returns when the last reference drops.
func (s *Storage[T]) AllocShared(init func(*T) error) (Shared[T], error) {
	p, err := s.Alloc(init)
	if err != nil {
		return Shared[T]{}, err
	}
	return newShared(p, s.Free), nil
}

// Close releases every page back to the provider. Outstanding objects and
// handles become invalid; see raw.Storage.Close.
func (s *Storage[T]) Close() error {
	return s.raw.Close()
}

// construct is the shared construct-or-return-slot path for typed and
// multi-type allocation.
func construct[T any](b raw.Interface, init func(*T) error) (*T, error) {
	p, err := b.Acquire()
	if err != nil {
		return nil, err
	}
	obj := (*T)(p)
	var zero T
	*obj = zero
	if init != nil {
		done := false
		// The deferred release covers panics in init as well as the error
		// return below; the panic continues after the slot is recovered.
		defer func() {
			if !done {
				b.Release(p)
			}
		}()
		if err := init(obj); err != nil {
			return nil, err
		}
		done = true
	}
	return obj, nil
}
