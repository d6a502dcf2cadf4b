package region

import (
	"fmt"
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

var _ Region = (*Arena)(nil)

// Arena is the default in-process Region. It reserves a fixed-capacity
// backing slab once, up front, and grows only a logical high-water mark
// within that reservation. This is the same trick a simulated sbrk(2)
// uses (preallocate the address space, hand out a prefix of it): it is
// required here because heap.Allocator keeps raw unsafe.Pointer links
// into the arena (its base, prologue and epilogue; free-list links are
// offsets from that base, see SPEC_FULL.md §3) that must
// never be invalidated by the backing array moving, the way append()
// growth would invalidate them.
//
// reserveCap is therefore an upper bound on how large the managed heap
// may ever grow, not a pre-sized allocation the allocator must fill
// immediately; Grow only ever extends the committed prefix.
type Arena struct {
	buf  []byte
	used int
}

// NewArena reserves a backing slab of reserveCap bytes and returns an
// empty Arena (Size() == 0) able to grow, via Grow, up to reserveCap
// bytes total without ever relocating its backing array.
//
// reserveCap must be > 0.
func NewArena(reserveCap int) (*Arena, error) {
	if reserveCap <= 0 {
		return nil, fmt.Errorf("region: reserveCap must be > 0, got %d", reserveCap)
	}
	return &Arena{buf: dirtmake.Bytes(0, reserveCap)}, nil
}

// Grow implements Region.
func (a *Arena) Grow(n int) (unsafe.Pointer, error) {
	if n < 0 {
		return nil, fmt.Errorf("region: Grow with negative n=%d", n)
	}
	if n == 0 {
		return a.High(), nil
	}
	if a.used+n > cap(a.buf) {
		return nil, ErrOutOfMemory
	}
	p := unsafe.Pointer(&a.buf[:cap(a.buf)][a.used])
	a.used += n
	return p, nil
}

// Low implements Region.
func (a *Arena) Low() unsafe.Pointer {
	return unsafe.Pointer(&a.buf[:cap(a.buf)][0])
}

// High implements Region.
func (a *Arena) High() unsafe.Pointer {
	full := a.buf[:cap(a.buf)]
	return unsafe.Add(unsafe.Pointer(&full[0]), a.used)
}

// Size implements Region.
func (a *Arena) Size() int { return a.used }

// Cap returns the capacity of the backing slab, i.e. the largest value
// Size() can ever reach: the reserveCap passed to NewArena, or the
// (possibly rounded-up) capacity of the slab Pool.Get obtained.
func (a *Arena) Cap() int { return cap(a.buf) }

// Release hands the Arena's backing slab to p, whether the Arena came
// from Pool.Get or from NewArena, and makes the Arena unusable; it
// exists for callers that cycle through many short-lived Allocators
// (benchmarks, tests) and want to avoid paying allocation cost on every
// iteration. Release with a nil p, or on an already released Arena,
// does nothing.
func (a *Arena) Release(p *Pool) {
	if p == nil || a.buf == nil {
		return
	}
	p.put(cap(a.buf), a.buf)
	a.buf = nil
	a.used = 0
}
