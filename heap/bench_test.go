package heap

import (
	"testing"

	"github.com/segfly/segheap/region"
)

func newBenchAllocator(b *testing.B, reserveCap int) *Allocator {
	b.Helper()
	r, err := region.NewArena(reserveCap)
	if err != nil {
		b.Fatal(err)
	}
	a, err := New(r)
	if err != nil {
		b.Fatal(err)
	}
	return a
}

func BenchmarkMallocFree(b *testing.B) {
	a := newBenchAllocator(b, 16<<20)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := a.Malloc(64)
		if err != nil {
			b.Fatal(err)
		}
		a.Free(p)
	}
}

func BenchmarkMallocSizes(b *testing.B) {
	a := newBenchAllocator(b, 64<<20)
	sizes := []int{16, 64, 112, 256, 448, 2048}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := a.Malloc(sizes[i%len(sizes)])
		if err != nil {
			b.Fatal(err)
		}
		a.Free(p)
	}
}

func BenchmarkPooledArenaCycle(b *testing.B) {
	pool := region.NewPool()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		arena, err := pool.Get(1 << 16)
		if err != nil {
			b.Fatal(err)
		}
		a, err := New(arena, WithChunkSize(16+MinBlockSize+4096), WithExtendSize(8+MinBlockSize+4096))
		if err != nil {
			b.Fatal(err)
		}
		p, err := a.Malloc(64)
		if err != nil {
			b.Fatal(err)
		}
		a.Free(p)
		arena.Release(pool)
	}
}

func BenchmarkCoalescing(b *testing.B) {
	a := newBenchAllocator(b, 16<<20)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p1, _ := a.Malloc(128)
		p2, _ := a.Malloc(128)
		a.Free(p1)
		a.Free(p2)
	}
}
