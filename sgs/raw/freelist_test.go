package raw

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// carveTestPage builds a standalone page for free-list tests.
func carveTestPage(t *testing.T, slots int) (head, tail *slot, g geometry) {
	t.Helper()
	g = Layout{Size: 8, Align: 8}.geometry()
	buf := make([]byte, slots*int(g.stride)+g.slotAlign)
	head, tail, n := carve(buf, g)
	require.GreaterOrEqual(t, n, slots)
	return head, tail, g
}

func Test_Carve_LinksHeadToTail(t *testing.T) {
	head, tail, _ := carveTestPage(t, 8)

	seen := 0
	var last *slot
	for s := head; s != nil; s = s.next.Load() {
		seen++
		last = s
	}
	require.GreaterOrEqual(t, seen, 8)
	require.Same(t, tail, last, "tail must terminate the carved chain")
}

func Test_Carve_TooSmall(t *testing.T) {
	g := Layout{Size: 64, Align: 8}.geometry()
	head, tail, n := carve(make([]byte, 8), g)
	require.Nil(t, head)
	require.Nil(t, tail)
	require.Zero(t, n)
}

func Test_FreeList_PopEmpty(t *testing.T) {
	var l freeList
	require.Nil(t, l.pop())
}

func Test_FreeList_PushPop(t *testing.T) {
	head, tail, _ := carveTestPage(t, 4)
	var l freeList
	l.push(head, tail)

	popped := map[*slot]bool{}
	for s := l.pop(); s != nil; s = l.pop() {
		require.False(t, popped[s], "slot handed out twice")
		popped[s] = true
	}
	require.GreaterOrEqual(t, len(popped), 4)

	// Push one back and pop it again.
	for s := range popped {
		l.push(s, s)
		require.Same(t, s, l.pop())
		break
	}
}

func Test_FreeList_ConcurrentChurn(t *testing.T) {
	const workers = 8
	const rounds = 2000

	head, tail, _ := carveTestPage(t, workers)
	var l freeList
	l.push(head, tail)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				s := l.pop()
				if s == nil {
					continue
				}
				l.push(s, s)
			}
		}()
	}
	wg.Wait()

	// Every slot must still be on the list exactly once.
	count := 0
	seen := map[*slot]bool{}
	for s := l.pop(); s != nil; s = l.pop() {
		require.False(t, seen[s], "slot duplicated by concurrent churn")
		seen[s] = true
		count++
	}
	require.GreaterOrEqual(t, count, workers)
}
