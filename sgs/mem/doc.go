// Package mem defines the raw memory provider consumed by the storage
// engine, together with the two stock implementations.
//
// # Provider Contract
//
// A Provider hands out aligned byte buffers and takes them back:
//
//   - Acquire(size, alignment): return a buffer of exactly size bytes whose
//     first byte sits on an alignment boundary
//   - Release(buf): return a buffer previously obtained from Acquire
//
// Providers are invoked only during page growth and storage teardown, never
// on the per-object allocation path, so they may be arbitrarily slow without
// affecting steady-state throughput.
//
// # Implementations
//
// System: Go-heap backed. Over-allocates when the requested alignment exceeds
// what the runtime guarantees and returns the aligned window. Release is a
// no-op; the garbage collector reclaims the backing array once the owning
// storage drops it.
//
// Mmap: anonymous private mappings via golang.org/x/sys/unix. Mappings are
// page-aligned, so any alignment up to the system page size is satisfied for
// free, and Release genuinely returns the memory to the OS. On non-unix
// platforms Mmap degrades to the System provider.
//
// # Errors
//
// Acquire failures wrap ErrOutOfMemory; argument misuse (non-positive size,
// non-power-of-two alignment) wraps ErrBadArgument. Callers are expected to
// match with errors.Is.
package mem
