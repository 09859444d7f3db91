package raw

import (
	"fmt"
	"unsafe"

	"github.com/andatr/segregated-storage/internal/align"
)

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// Layout identifies the slot shape a Storage serves: the body size in bytes
// and its required alignment. Two types with equal Layout are
// interchangeable from the engine's point of view and may share one storage.
type Layout struct {
	Size  int
	Align int
}

// LayoutOf derives the Layout for T from the compiler's own size and
// alignment for the type.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{
		Size:  int(unsafe.Sizeof(v)),
		Align: int(unsafe.Alignof(v)),
	}
}

func (l Layout) validate() error {
	if l.Size < 0 {
		return fmt.Errorf("%w: size %d", ErrBadLayout, l.Size)
	}
	if !align.IsPow2(l.Align) {
		return fmt.Errorf("%w: alignment %d is not a power of two", ErrBadLayout, l.Align)
	}
	return nil
}

// geometry is the resolved slot arithmetic for a Layout.
type geometry struct {
	slotAlign int     // alignment of a whole slot: max(pointer, body alignment)
	bodyOff   uintptr // offset of the body within a slot
	stride    uintptr // distance between consecutive slot starts
}

func (l Layout) geometry() geometry {
	a := align.Max(l.Align, ptrSize)
	bodyOff := align.Up(ptrSize, l.Align)
	return geometry{
		slotAlign: a,
		bodyOff:   uintptr(bodyOff),
		stride:    uintptr(align.Up(bodyOff+l.Size, a)),
	}
}
