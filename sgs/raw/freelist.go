package raw

import (
	"sync/atomic"
	"unsafe"

	"github.com/andatr/segregated-storage/internal/align"
)

// slot is the link word at the start of every slot. The body lives bodyOff
// bytes past it in the same page buffer.
type slot struct {
	next atomic.Pointer[slot]
}

// freeList is a lock-free stack of free slots under a single atomic head.
type freeList struct {
	head atomic.Pointer[slot]
}

// pop removes and returns the head slot, or nil when the list is empty.
func (l *freeList) pop() *slot {
	for {
		old := l.head.Load()
		if old == nil {
			return nil
		}
		next := old.next.Load()
		if l.head.CompareAndSwap(old, next) {
			return old
		}
	}
}

// push splices the pre-linked run head..tail onto the front of the list in
// one atomic step. head == tail pushes a single slot.
func (l *freeList) push(head, tail *slot) {
	for {
		old := l.head.Load()
		tail.next.Store(old)
		if l.head.CompareAndSwap(old, head) {
			return
		}
	}
}

// page records one provider buffer. The buf reference keeps the backing
// memory reachable for as long as the page chain holds it; slots are carved
// in place and never individually freed.
type page struct {
	next *page
	buf  []byte
}

// carve links buf into a chain of slots and returns the run ends along with
// the slot count. The buffer is expected to be slotAlign-aligned already;
// any misalignment only costs leading bytes.
func carve(buf []byte, g geometry) (head, tail *slot, n int) {
	p := unsafe.Pointer(unsafe.SliceData(buf))
	start := uintptr(p)
	base := align.UpPtr(start, uintptr(g.slotAlign))
	off := base - start
	if off >= uintptr(len(buf)) {
		return nil, nil, 0
	}
	usable := uintptr(len(buf)) - off
	n = int(usable / g.stride)
	if n == 0 {
		return nil, nil, 0
	}
	head = (*slot)(unsafe.Add(p, off))
	prev := head
	for i := 1; i < n; i++ {
		s := (*slot)(unsafe.Add(p, off+uintptr(i)*g.stride))
		prev.next.Store(s)
		prev = s
	}
	prev.next.Store(nil)
	return head, prev, n
}
