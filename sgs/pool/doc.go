// Package pool provides a self-contained, thread-safe object pool for a
// single type: the page-chain/free-list engine of sgs/raw collapsed into one
// component, without layout routing and without page-size doubling.
//
// # Model
//
// Pages are fixed-size slices of native slots, so slot alignment is whatever
// the Go compiler gives T, and page memory comes from the runtime rather
// than a pluggable provider. Every object is constructed once, when its page
// is carved; Get and Put recycle live objects through the lock-free free
// list without reconstructing them. Close runs the destructor over every
// object still on the free list and drops the pages.
//
// This is the right shape when T owns resources that are expensive to set up
// and cheap to reuse (buffers, sub-allocations, handles): construction cost
// is paid once per slot, not once per Get. Native slots also mean the
// collector scans object bodies, so pointer-bearing types that sgs rejects
// with ErrPointerType are fine here.
//
//	p, err := pool.New[bytes.Buffer](nil,
//	    pool.WithReset[bytes.Buffer](func(b *bytes.Buffer) { b.Reset() }),
//	)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	b, err := p.Get()
//	if err != nil {
//	    return err
//	}
//	// ... use b; the reset hook scrubs it on Put ...
//	p.Put(b)
//
// # Preconditions
//
// Put accepts only pointers obtained from Get on the same pool, once each.
// Callers must not hold objects past Close. Both are documented
// preconditions, not runtime checks, matching the sgs packages.
package pool
