package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsPow2(t *testing.T) {
	for _, v := range []int{1, 2, 4, 8, 64, 4096, 1 << 30} {
		assert.True(t, IsPow2(v), "%d", v)
	}
	for _, v := range []int{0, -1, -8, 3, 6, 12, 4097} {
		assert.False(t, IsPow2(v), "%d", v)
	}
}

func Test_Up(t *testing.T) {
	tests := []struct{ n, a, want int }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{17, 16, 32},
		{100, 64, 128},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Up(tt.n, tt.a), "Up(%d, %d)", tt.n, tt.a)
	}
}

func Test_UpPtr(t *testing.T) {
	assert.EqualValues(t, 0, UpPtr(0, 8))
	assert.EqualValues(t, 64, UpPtr(1, 64))
	assert.EqualValues(t, 64, UpPtr(64, 64))
	assert.EqualValues(t, 128, UpPtr(65, 64))
}

func Test_OverflowSafe(t *testing.T) {
	v, ok := MulOverflowSafe(1000, 1000)
	assert.True(t, ok)
	assert.Equal(t, 1000000, v)

	_, ok = MulOverflowSafe(math.MaxInt/2, 3)
	assert.False(t, ok)

	v, ok = AddOverflowSafe(math.MaxInt-1, 1)
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt, v)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	assert.False(t, ok)
}
