package pool

import (
	"sync"
	"testing"
)

type benchConn struct {
	id  uint64
	buf [128]byte
}

func Benchmark_Pool_GetPut(b *testing.B) {
	p, err := New[benchConn](nil)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := p.Get()
		if err != nil {
			b.Fatal(err)
		}
		c.id = uint64(i)
		p.Put(c)
	}
}

func Benchmark_Pool_GetPut_Parallel(b *testing.B) {
	p, err := New[benchConn](nil)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c, err := p.Get()
			if err != nil {
				b.Fatal(err)
			}
			c.id = 1
			p.Put(c)
		}
	})
}

// Benchmark_SyncPool_GetPut compares against the standard library's pool,
// which trades slot stability and bounded growth for GC integration.
func Benchmark_SyncPool_GetPut(b *testing.B) {
	sp := sync.Pool{New: func() any { return new(benchConn) }}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := sp.Get().(*benchConn)
		c.id = uint64(i)
		sp.Put(c)
	}
}
