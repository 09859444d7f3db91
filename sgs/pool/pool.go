package pool

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// DefaultPageBytes is the page size used when the configuration does not
// override it. Unlike sgs/raw, pool pages never double.
const DefaultPageBytes = 64 * 1024

// ErrPageSize indicates that the configured page size cannot fit a single
// slot of T.
var ErrPageSize = errors.New("pool: page size must fit at least one slot")

// Config controls a Pool. The zero value (or a nil pointer) selects the
// defaults.
type Config struct {
	// PageBytes is the size of every page. Fixed for the pool's lifetime.
	PageBytes int
}

// Option configures a Pool at construction time.
type Option[T any] func(*Pool[T])

// WithConstructor installs a constructor run once per slot, when the slot's
// page is carved. Objects are recycled live afterwards; Get does not run it
// again.
func WithConstructor[T any](ctor func(*T)) Option[T] {
	return func(p *Pool[T]) { p.ctor = ctor }
}

// WithDestructor installs a destructor run by Close over every object still
// on the free list. The destructor must not panic.
func WithDestructor[T any](dtor func(*T)) Option[T] {
	return func(p *Pool[T]) { p.dtor = dtor }
}

// WithReset installs a hook run by Put on the returned object, before it
// joins the free list. Use it to scrub per-use state while keeping the
// constructed resources. The hook must not panic.
func WithReset[T any](reset func(*T)) Option[T] {
	return func(p *Pool[T]) { p.reset = reset }
}

// slot pairs the free-list link with the object body. Native struct layout
// keeps the body aligned for T without any pointer arithmetic beyond Put's
// container-of step.
type slot[T any] struct {
	next atomic.Pointer[slot[T]]
	body T
}

// pageOf owns one carved slice of slots. The slice reference keeps every
// slot of the page reachable for the life of the chain.
type pageOf[T any] struct {
	next  *pageOf[T]
	slots []slot[T]
}

// Pool is a thread-safe fixed-size object pool for T. Same free-list and
// double-checked growth algorithm as sgs/raw, with the page size fixed at
// construction.
type Pool[T any] struct {
	slotsPerPage int
	bodyOff      uintptr
	ctor         func(*T)
	dtor         func(*T)
	reset        func(*T)

	free      atomic.Pointer[slot[T]]
	pageCount atomic.Uint64
	growMu    sync.Mutex
	pages     *pageOf[T]

	// onGrow, when set, runs under the growth lock just before a page is
	// carved. Test instrumentation only.
	onGrow func(pages uint64)
}

// New creates an empty pool. cfg may be nil for defaults. No page is carved
// until the first Get.
func New[T any](cfg *Config, opts ...Option[T]) (*Pool[T], error) {
	pageBytes := DefaultPageBytes
	if cfg != nil && cfg.PageBytes != 0 {
		pageBytes = cfg.PageBytes
	}
	var s slot[T]
	slotSize := int(unsafe.Sizeof(s))
	if pageBytes < slotSize {
		return nil, fmt.Errorf("%w: page %d bytes, slot %d", ErrPageSize, pageBytes, slotSize)
	}
	p := &Pool[T]{
		slotsPerPage: pageBytes / slotSize,
		bodyOff:      unsafe.Offsetof(s.body),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Get pops an object from the pool, growing by one page when the free list
// is empty. The object keeps whatever state its previous holder left, unless
// a reset hook scrubbed it on Put.
func (p *Pool[T]) Get() (*T, error) {
	for {
		observed := p.pageCount.Load()
		if sl := p.pop(); sl != nil {
			return &sl.body, nil
		}
		if err := p.grow(observed); err != nil {
			return nil, err
		}
	}
}

// Put returns an object obtained from Get, running the reset hook first when
// one is installed; without a hook, reset is the caller's business. Returning
// a foreign pointer or returning twice is undefined behavior.
func (p *Pool[T]) Put(obj *T) {
	if p.reset != nil {
		p.reset(obj)
	}
	sl := (*slot[T])(unsafe.Add(unsafe.Pointer(obj), -p.bodyOff))
	p.push(sl, sl)
}

// Pages returns the number of pages carved so far.
func (p *Pool[T]) Pages() uint64 { return p.pageCount.Load() }

func (p *Pool[T]) pop() *slot[T] {
	for {
		old := p.free.Load()
		if old == nil {
			return nil
		}
		next := old.next.Load()
		if p.free.CompareAndSwap(old, next) {
			return old
		}
	}
}

func (p *Pool[T]) push(head, tail *slot[T]) {
	for {
		old := p.free.Load()
		tail.next.Store(old)
		if p.free.CompareAndSwap(old, head) {
			return
		}
	}
}

// grow carves one page unless another goroutine already grew past the
// observed page count (double-checked, at most one page per generation).
func (p *Pool[T]) grow(observed uint64) error {
	p.growMu.Lock()
	defer p.growMu.Unlock()
	if p.pageCount.Load() != observed {
		return nil
	}
	if p.onGrow != nil {
		p.onGrow(observed)
	}
	slots := make([]slot[T], p.slotsPerPage)
	for i := range slots {
		if p.ctor != nil {
			p.ctor(&slots[i].body)
		}
		if i+1 < len(slots) {
			slots[i].next.Store(&slots[i+1])
		}
	}
	p.pages = &pageOf[T]{next: p.pages, slots: slots}
	p.push(&slots[0], &slots[len(slots)-1])
	p.pageCount.Add(1)
	return nil
}

// Close destructs every object still on the free list and drops the page
// chain. Callers must not hold objects past Close; Close must not race Get
// or Put. Idempotent.
func (p *Pool[T]) Close() error {
	p.growMu.Lock()
	defer p.growMu.Unlock()
	if p.dtor != nil {
		for sl := p.free.Load(); sl != nil; sl = sl.next.Load() {
			p.dtor(&sl.body)
		}
	}
	p.free.Store(nil)
	p.pages = nil
	return nil
}
