package sgs

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/andatr/segregated-storage/sgs/mem"
	"github.com/andatr/segregated-storage/sgs/raw"
)

// Multi routes allocations for arbitrary types to per-(size, alignment)
// bucket storages. Buckets are created lazily on first use and live until
// Close; types with identical layout share one bucket and one free list.
//
// Go does not allow type parameters on methods, so the per-type operations
// are package-level functions taking the Multi as their first argument:
// Alloc, Free, AllocUnique, AllocShared, Register.
type Multi struct {
	pageBytes int
	provider  mem.Provider

	mu      sync.RWMutex
	buckets map[raw.Layout]raw.Interface

	// dtors holds registered destructors keyed by type, not by layout:
	// types sharing a bucket keep their own destructor, mirroring how Free
	// is driven by the static type at the call site.
	dtors map[reflect.Type]func(unsafe.Pointer)
}

// NewMulti creates an empty multi-type storage. cfg may be nil for defaults;
// cfg.PageBytes is the first-page size for buckets without a registered
// override.
func NewMulti(cfg *Config) *Multi {
	m := &Multi{
		pageBytes: raw.DefaultPageBytes,
		buckets:   make(map[raw.Layout]raw.Interface),
		dtors:     make(map[reflect.Type]func(unsafe.Pointer)),
	}
	if cfg != nil {
		if cfg.PageBytes != 0 {
			m.pageBytes = cfg.PageBytes
		}
		m.provider = cfg.Provider
	}
	return m
}

// Register creates the bucket for T up front with an explicit first-page
// size, overriding the default for that layout. Registering a layout whose
// bucket already exists leaves the existing bucket in place.
//
// A destructor installed through WithDestructor runs in Free and in handle
// release, exactly as on Storage. The destructor belongs to T, not to the
// bucket: another type sharing the same layout is unaffected, and
// re-registering T replaces its destructor even when the bucket survives.
func Register[T any](m *Multi, pageBytes int, opts ...Option[T]) error {
	if err := checkPointerFree[T](); err != nil {
		return err
	}
	var cfg Storage[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, err := m.create(raw.LayoutOf[T](), pageBytes); err != nil {
		return err
	}
	if cfg.dtor != nil {
		dtor := cfg.dtor
		m.mu.Lock()
		m.dtors[reflect.TypeOf((*T)(nil)).Elem()] = func(p unsafe.Pointer) { dtor((*T)(p)) }
		m.mu.Unlock()
	}
	return nil
}

// Alloc allocates a T from m with the same construct-or-return-slot
// semantics as Storage.Alloc. T must be pointer-free; see New.
func Alloc[T any](m *Multi, init func(*T) error) (*T, error) {
	if err := checkPointerFree[T](); err != nil {
		return nil, err
	}
	b, err := m.bucket(raw.LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	return construct(b, init)
}

// Free runs T's registered destructor, if any, and returns the slot to its
// bucket. p must have been allocated through m as a T and must not be freed
// twice.
func Free[T any](m *Multi, p *T) {
	m.mu.RLock()
	b := m.buckets[raw.LayoutOf[T]()]
	dtor := m.dtors[reflect.TypeOf((*T)(nil)).Elem()]
	m.mu.RUnlock()
	if dtor != nil {
		dtor(unsafe.Pointer(p))
	}
	b.Release(unsafe.Pointer(p))
}

// AllocUnique allocates a T and wraps it in an exclusive handle; Release
// routes the slot back through m.
func AllocUnique[T any](m *Multi, init func(*T) error) (Unique[T], error) {
	p, err := Alloc(m, init)
	if err != nil {
		return Unique[T]{}, err
	}
	return Unique[T]{ptr: p, free: func(p *T) { Free(m, p) }}, nil
}

// AllocShared allocates a T and wraps it in a reference-counted handle; the
// last Release routes the slot back through m.
func AllocShared[T any](m *Multi, init func(*T) error) (Shared[T], error) {
	p, err := Alloc(m, init)
	if err != nil {
		return Shared[T]{}, err
	}
	return newShared(p, func(p *T) { Free(m, p) }), nil
}

// bucket resolves the storage for a layout: optimistic read-locked lookup,
// then creation behind the write lock on a miss.
func (m *Multi) bucket(l raw.Layout) (raw.Interface, error) {
	m.mu.RLock()
	b := m.buckets[l]
	m.mu.RUnlock()
	if b != nil {
		return b, nil
	}
	return m.create(l, m.pageBytes)
}

func (m *Multi) create(l raw.Layout, pageBytes int) (raw.Interface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Mandatory re-check: another goroutine may have created the bucket
	// between the read unlock and this write lock.
	if b := m.buckets[l]; b != nil {
		return b, nil
	}
	b, err := raw.New(l, &raw.Config{PageBytes: pageBytes, Provider: m.provider})
	if err != nil {
		return nil, err
	}
	m.buckets[l] = b
	return b, nil
}

// Close tears down every bucket. Outstanding objects and handles become
// invalid; Close must not race allocation.
func (m *Multi) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var first error
	for _, b := range m.buckets {
		if err := b.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.buckets = make(map[raw.Layout]raw.Interface)
	m.dtors = make(map[reflect.Type]func(unsafe.Pointer))
	return first
}
