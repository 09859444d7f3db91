package sgs

import "errors"

// ErrPointerType indicates a type whose values contain Go pointers (pointers,
// strings, slices, maps, channels, funcs, interfaces, or aggregates of
// those). Slot bodies live in provider byte buffers that the garbage
// collector does not scan for references, so such types cannot be stored
// safely here; sgs/pool keeps objects in native slots and has no such
// restriction.
var ErrPointerType = errors.New("sgs: type contains Go pointers")
