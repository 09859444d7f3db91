// Package testutil provides instrumented memory providers for the storage
// tests: one that counts provider traffic and one that injects failures.
package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/andatr/segregated-storage/sgs/mem"
)

// CountingProvider wraps a provider and counts Acquire and Release calls.
// It stands in for a global allocation counter: every page the engine takes
// from the provider shows up here, so growth behavior is observable without
// touching the engine.
type CountingProvider struct {
	inner    mem.Provider
	acquires atomic.Int64
	releases atomic.Int64
}

// NewCounting wraps inner; nil wraps mem.System.
func NewCounting(inner mem.Provider) *CountingProvider {
	if inner == nil {
		inner = mem.System{}
	}
	return &CountingProvider{inner: inner}
}

// Acquire counts and delegates.
func (p *CountingProvider) Acquire(size, alignment int) ([]byte, error) {
	buf, err := p.inner.Acquire(size, alignment)
	if err == nil {
		p.acquires.Add(1)
	}
	return buf, err
}

// Release counts and delegates.
func (p *CountingProvider) Release(buf []byte) {
	p.releases.Add(1)
	p.inner.Release(buf)
}

// Acquires returns the number of successful Acquire calls so far.
func (p *CountingProvider) Acquires() int64 { return p.acquires.Load() }

// Releases returns the number of Release calls so far.
func (p *CountingProvider) Releases() int64 { return p.releases.Load() }

// FailingProvider delegates the first succeed Acquire calls and fails every
// one after that, for exercising the out-of-memory path.
type FailingProvider struct {
	inner     mem.Provider
	remaining atomic.Int64
}

// NewFailing wraps inner (nil wraps mem.System), allowing succeed successful
// acquisitions before failing.
func NewFailing(inner mem.Provider, succeed int) *FailingProvider {
	if inner == nil {
		inner = mem.System{}
	}
	p := &FailingProvider{inner: inner}
	p.remaining.Store(int64(succeed))
	return p
}

// Acquire fails once the budget is spent.
func (p *FailingProvider) Acquire(size, alignment int) ([]byte, error) {
	if p.remaining.Add(-1) < 0 {
		return nil, fmt.Errorf("%w: injected failure", mem.ErrOutOfMemory)
	}
	return p.inner.Acquire(size, alignment)
}

// Release delegates.
func (p *FailingProvider) Release(buf []byte) { p.inner.Release(buf) }
