package sgs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Unique_ReleasesOnce(t *testing.T) {
	dtors := 0
	s, err := New[widget](nil, WithDestructor[widget](func(*widget) { dtors++ }))
	require.NoError(t, err)
	defer s.Close()

	u, err := s.AllocUnique(newWidget)
	require.NoError(t, err)
	require.NotNil(t, u.Get())
	assert.Equal(t, byte('B'), u.Get().ch)

	u.Release()
	assert.Equal(t, 1, dtors)
	assert.Nil(t, u.Get())

	u.Release() // second release is a no-op
	assert.Equal(t, 1, dtors)
}

func Test_Unique_ZeroValue(t *testing.T) {
	var u Unique[widget]
	assert.Nil(t, u.Get())
	u.Release() // must not panic
}

func Test_Shared_LastReferenceFrees(t *testing.T) {
	dtors := 0
	s, err := New[widget](nil, WithDestructor[widget](func(*widget) { dtors++ }))
	require.NoError(t, err)
	defer s.Close()

	h, err := s.AllocShared(newWidget)
	require.NoError(t, err)
	require.NotNil(t, h.Get())

	clone := h.Clone()
	require.Same(t, h.Get(), clone.Get())

	h.Release()
	assert.Zero(t, dtors, "object must survive while a clone holds it")
	require.NotNil(t, clone.Get())

	clone.Release()
	assert.Equal(t, 1, dtors, "last release frees exactly once")
}

func Test_Shared_ZeroValue(t *testing.T) {
	var h Shared[widget]
	assert.Nil(t, h.Get())
	h.Release()
	assert.Nil(t, h.Clone().Get())
}

func Test_Shared_ConcurrentRelease(t *testing.T) {
	const clones = 32

	dtors := 0
	s, err := New[widget](nil, WithDestructor[widget](func(*widget) { dtors++ }))
	require.NoError(t, err)
	defer s.Close()

	h, err := s.AllocShared(newWidget)
	require.NoError(t, err)

	handles := make([]Shared[widget], clones)
	for i := range handles {
		handles[i] = h.Clone()
	}
	h.Release()

	var wg sync.WaitGroup
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i].Release()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, dtors, "concurrent releases must free exactly once")
}

func Test_Unique_SlotRecycled(t *testing.T) {
	s, err := New[widget](&Config{PageBytes: 160})
	require.NoError(t, err)
	defer s.Close()

	u, err := s.AllocUnique(newWidget)
	require.NoError(t, err)
	p := u.Get()
	u.Release()

	w, err := s.Alloc(nil)
	require.NoError(t, err)
	assert.Same(t, p, w, "released handle must return its slot to the free list")
}
