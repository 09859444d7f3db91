// Package raw implements the untyped fixed-size storage engine: pages carved
// into fixed-size slots, recycled through a lock-free free list, growing on
// demand.
//
// # Layout
//
// A Storage serves exactly one Layout, a (size, alignment) pair. Every slot
// consists of a pointer-word link followed by an alignment-padded body:
//
//	[ next ][ pad ][ body (Size bytes) ][ pad ]
//
// The body offset is the slot alignment rounded up from the link word, and
// the slot stride rounds the whole thing to the slot alignment, so body
// addresses always satisfy addr % Align == 0. Pages are requested from the
// memory provider already aligned to the slot alignment, which makes the
// first slot start at byte zero of the page.
//
// # Free List
//
// Free slots form a singly-linked stack under a single atomic head. Both pop
// and push are compare-and-swap retry loops; push splices an already-linked
// run of slots (a whole fresh page) in one step.
//
// The classic ABA hazard does not apply here and no tagging or epoch scheme
// is used: slot addresses are immutable for the life of the owning page,
// pages are never released before the storage itself, and a slot is either on
// the free list or exclusively owned by the caller that acquired it. A slot
// observed as head can therefore not be popped, handed to another caller, and
// re-pushed while a compare-and-swap against it is still in flight, because
// only the current owner may release it.
//
// # Growth
//
// When pop finds the list empty, the caller enters the growth path: take the
// growth mutex, re-check the page count recorded before the lock was taken,
// and return immediately if another goroutine already grew in the interim
// (double-checked growth, at most one page per observed generation). A new
// page of the current page size is acquired from the provider, carved, and
// spliced into the free list in one push; the page size doubles for the next
// growth, capped so the doubling cannot overflow. Provider failure leaves the
// storage untouched: no partial page is ever linked.
//
// # Misuse
//
// Releasing a pointer that did not come from this storage, or releasing the
// same pointer twice, is undefined behavior. Slots carry no ownership tags;
// the check would cost more than the allocation.
package raw
