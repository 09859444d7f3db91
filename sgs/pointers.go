package sgs

import (
	"fmt"
	"reflect"
	"sync"
)

// pointerVerdicts memoizes the per-type walk; reflect.Type values are
// canonical, one entry per distinct T ever allocated.
var pointerVerdicts sync.Map // reflect.Type -> bool

// checkPointerFree rejects types the garbage collector would need to scan.
// Provider pages are plain byte buffers: a reference stored in a slot body is
// invisible to the collector and its referent can be reclaimed while the
// object is still live.
func checkPointerFree[T any]() error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := pointerVerdicts.Load(t)
	if !ok {
		v = !hasPointers(t)
		pointerVerdicts.Store(t, v)
	}
	if !v.(bool) {
		return fmt.Errorf("%w: %s", ErrPointerType, t)
	}
	return nil
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.String,
		reflect.Slice, reflect.Map, reflect.Chan, reflect.Func,
		reflect.Interface:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
