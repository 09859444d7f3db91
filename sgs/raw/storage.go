package raw

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/andatr/segregated-storage/sgs/mem"
)

const (
	// DefaultPageBytes is the advisory size of the first page when the
	// configuration does not override it.
	DefaultPageBytes = 0x1000

	// maxPageBytes caps the doubling so repeated growth cannot overflow the
	// page size.
	maxPageBytes = 1 << 30
)

// Config controls a Storage. The zero value (or a nil pointer) selects the
// defaults.
type Config struct {
	// PageBytes is the size of the first page. Advisory: each subsequent
	// growth doubles it, up to an internal cap.
	PageBytes int

	// Provider supplies page memory. Defaults to mem.System.
	Provider mem.Provider
}

// Interface is the capability set the multi-type router needs from a bucket:
// hand out one slot body, take one back, tear down. It lets heterogeneous
// bucket storages live behind a single map value type.
type Interface interface {
	Acquire() (unsafe.Pointer, error)
	Release(p unsafe.Pointer)
	Close() error
}

var _ Interface = (*Storage)(nil)

// Storage is a thread-safe fixed-size allocator for a single Layout.
//
// Acquire never fails while the memory provider keeps providing; Release is
// lock-free. The only blocking happens inside the growth mutex, and its
// critical section is one provider call plus one page carve.
type Storage struct {
	layout   Layout
	geo      geometry
	provider mem.Provider
	free     freeList

	// pageCount is read lock-free by the growth double-check; everything
	// below it is guarded by growMu.
	pageCount atomic.Uint64
	growMu    sync.Mutex
	pages     *page
	pageBytes int
	closed    bool

	// onGrow, when set, runs under the growth lock just before a page is
	// acquired. Test instrumentation only.
	onGrow func(pageBytes int)
}

// New creates a Storage for the given layout. cfg may be nil for defaults.
// The first page is not acquired until the first Acquire call.
func New(layout Layout, cfg *Config) (*Storage, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	s := &Storage{
		layout:    layout,
		geo:       layout.geometry(),
		provider:  mem.System{},
		pageBytes: DefaultPageBytes,
	}
	if cfg != nil {
		if cfg.PageBytes != 0 {
			s.pageBytes = cfg.PageBytes
		}
		if cfg.Provider != nil {
			s.provider = cfg.Provider
		}
	}
	if s.pageBytes < int(s.geo.stride) {
		return nil, fmt.Errorf("%w: page %d bytes, slot stride %d",
			ErrPageSize, s.pageBytes, s.geo.stride)
	}
	return s, nil
}

// Layout returns the layout this storage serves.
func (s *Storage) Layout() Layout { return s.layout }

// Pages returns the number of pages acquired so far.
func (s *Storage) Pages() uint64 { return s.pageCount.Load() }

// NextPageBytes returns the size the next growth will request.
func (s *Storage) NextPageBytes() int {
	s.growMu.Lock()
	defer s.growMu.Unlock()
	return s.pageBytes
}

// Acquire returns a pointer to the body of a free slot, growing the page
// chain when the free list is empty. The body bytes are whatever the
// previous occupant left behind; callers own them exclusively until Release.
// After Close, Acquire fails with ErrClosed.
func (s *Storage) Acquire() (unsafe.Pointer, error) {
	for {
		// The count must be observed before the list is seen empty, so the
		// double-check in grow can tell whether somebody else already grew.
		observed := s.pageCount.Load()
		if sl := s.free.pop(); sl != nil {
			return unsafe.Add(unsafe.Pointer(sl), s.geo.bodyOff), nil
		}
		if err := s.grow(observed); err != nil {
			return nil, err
		}
	}
}

// Release returns a slot body previously obtained from Acquire on this
// storage. Releasing a foreign pointer or releasing twice is undefined
// behavior; see the package documentation.
func (s *Storage) Release(p unsafe.Pointer) {
	sl := (*slot)(unsafe.Add(p, -s.geo.bodyOff))
	s.free.push(sl, sl)
}

// grow adds one page unless another goroutine already grew past the observed
// page count. Provider failure is wrapped and the storage is left untouched.
func (s *Storage) grow(observed uint64) error {
	s.growMu.Lock()
	defer s.growMu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.pageCount.Load() != observed {
		return nil
	}
	if s.onGrow != nil {
		s.onGrow(s.pageBytes)
	}
	buf, err := s.provider.Acquire(s.pageBytes, s.geo.slotAlign)
	if err != nil {
		return fmt.Errorf("raw: page growth: %w", err)
	}
	head, tail, n := carve(buf, s.geo)
	if n == 0 {
		// Unreachable when New validated the page size, but a misbehaving
		// provider could return a short buffer.
		s.provider.Release(buf)
		return fmt.Errorf("%w: provider returned %d bytes, slot stride %d",
			ErrPageSize, len(buf), s.geo.stride)
	}
	s.pages = &page{next: s.pages, buf: buf}
	s.free.push(head, tail)
	if s.pageBytes < maxPageBytes {
		s.pageBytes *= 2
	}
	s.pageCount.Add(1)
	return nil
}

// Close releases every page back to the provider and marks the storage
// closed: later Acquire calls fail with ErrClosed. All slots handed out by
// this storage become invalid; callers must not hold outstanding pointers
// past Close. Close is idempotent but must not race Acquire or Release.
func (s *Storage) Close() error {
	s.growMu.Lock()
	defer s.growMu.Unlock()
	s.closed = true
	s.free.head.Store(nil)
	for p := s.pages; p != nil; p = p.next {
		s.provider.Release(p.buf)
	}
	s.pages = nil
	return nil
}
