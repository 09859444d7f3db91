//go:build unix

package mem

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Mmap_AcquireRelease(t *testing.T) {
	p := Mmap{}
	buf, err := p.Acquire(1000, 64)
	require.NoError(t, err)
	require.Len(t, buf, 1000)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	assert.Zero(t, addr%64)

	for i := range buf {
		buf[i] = 0x5a
	}
	p.Release(buf)
}

func Test_Mmap_AlignmentBeyondPageSize(t *testing.T) {
	_, err := Mmap{}.Acquire(64, os.Getpagesize()*2)
	require.ErrorIs(t, err, ErrBadArgument)
}

func Test_Mmap_ReleaseEmpty(t *testing.T) {
	Mmap{}.Release(nil) // must not panic
}
