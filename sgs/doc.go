// Package sgs provides typed, thread-safe fixed-size object storage on top
// of the raw segregated-storage engine.
//
// # Overview
//
// General-purpose allocation is expensive on hot paths that churn through
// objects of a handful of types. This package amortizes that cost: provider
// pages are carved into fixed-size slots, freed slots recycle through a
// lock-free free list, and capacity grows on demand with the page size
// doubling on each growth.
//
// # Key Types
//
//   - Storage[T]: allocator for a single type T
//   - Multi: router serving many types, bucketed by (size, alignment)
//   - Unique[T] / Shared[T]: ownership handles that return their slot
//     automatically
//
// # Single-Type Storage
//
//	s, err := sgs.New[Order](nil)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	o, err := s.Alloc(func(o *Order) error {
//	    o.ID = next()
//	    return nil
//	})
//	if err != nil {
//	    return err
//	}
//	// ... use o ...
//	s.Free(o)
//
// Alloc zeroes the slot body before running the init function, so an object
// never observes a previous occupant's bytes. When init returns an error or
// panics, the slot goes back to the free list before the failure reaches the
// caller: a failed construction consumes nothing.
//
// # Multi-Type Storage
//
//	m := sgs.NewMulti(nil)
//	defer m.Close()
//
//	a, err := sgs.Alloc[Order](m, nil)
//	b, err := sgs.Alloc[Trade](m, nil)
//	sgs.Free(m, a)
//	sgs.Free(m, b)
//
// Buckets are created lazily, at most once per distinct (size, alignment),
// behind a read/write lock: lookups take the read lock, creation upgrades to
// the write lock and re-checks. Types with identical layout share a bucket
// and therefore a free list. Go has no generic methods, so the per-type
// operations on Multi are package-level functions.
//
// # Handles
//
// AllocUnique returns an exclusive handle that frees its slot on Release;
// AllocShared returns a reference-counted handle whose last Release frees
// the slot. A handle holds only a release capability, never an owning
// reference: the storage must outlive every outstanding handle.
//
// # Pointer-Free Types Only
//
// Stored types must not contain Go pointers: no pointers, strings, slices,
// maps, channels, funcs, or interfaces, at any nesting depth. Slot bodies
// live inside provider byte buffers (or raw mapped memory) that the garbage
// collector treats as pointer-free, so a reference written into a slot does
// not keep its referent alive and the referent can be collected while the
// object is still in use. New, Alloc, and Register reject such types with
// ErrPointerType; the check walks the type once and is memoized. Use
// sgs/pool for pointer-bearing types: its slots are native Go structs the
// collector scans normally.
//
// # Preconditions
//
// Free accepts only pointers obtained from the same storage (or, for Multi,
// from the bucket serving that type's layout), exactly once each. Violations
// are undefined behavior, not detected errors; slots carry no ownership tags
// on purpose. Destructors must not panic.
//
// # Related Packages
//
//   - github.com/andatr/segregated-storage/sgs/raw: the untyped engine
//   - github.com/andatr/segregated-storage/sgs/mem: memory providers
//   - github.com/andatr/segregated-storage/sgs/pool: self-contained
//     single-type pool with a fixed page size
package sgs
