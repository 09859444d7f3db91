package sgs

import "sync/atomic"

// Unique is an exclusive ownership handle. Release frees the underlying slot
// exactly once; further Release calls on the same handle are no-ops. The
// zero Unique is released.
//
// The handle carries only the release capability of its storage, not an
// owning reference: the storage must outlive the handle.
type Unique[T any] struct {
	ptr  *T
	free func(*T)
}

// Get returns the owned object, or nil after Release.
func (u *Unique[T]) Get() *T { return u.ptr }

// Release frees the owned object and clears the handle.
func (u *Unique[T]) Release() {
	if u.ptr == nil {
		return
	}
	p := u.ptr
	u.ptr = nil
	free := u.free
	u.free = nil
	free(p)
}

// Shared is a reference-counted ownership handle. Clone adds a reference,
// Release drops one; the slot returns to its storage when the count reaches
// zero. Copies of a Shared alias the same count — use Clone, not assignment,
// to extend ownership. The zero Shared is released.
type Shared[T any] struct {
	state *sharedState[T]
}

type sharedState[T any] struct {
	refs atomic.Int64
	ptr  *T
	free func(*T)
}

func newShared[T any](p *T, free func(*T)) Shared[T] {
	st := &sharedState[T]{ptr: p, free: free}
	st.refs.Store(1)
	return Shared[T]{state: st}
}

// Get returns the shared object, or nil after the last Release.
func (h Shared[T]) Get() *T {
	if h.state == nil {
		return nil
	}
	return h.state.ptr
}

// Clone returns a new reference to the same object. Cloning a released
// handle is a misuse of the API and returns a released handle.
func (h Shared[T]) Clone() Shared[T] {
	if h.state == nil {
		return Shared[T]{}
	}
	h.state.refs.Add(1)
	return h
}

// Release drops one reference; the last one frees the object. Safe to call
// concurrently from holders of different clones.
func (h Shared[T]) Release() {
	if h.state == nil {
		return
	}
	if h.state.refs.Add(-1) == 0 {
		h.state.free(h.state.ptr)
		h.state.ptr = nil
	}
}
