package region

import (
	"fmt"

	"github.com/bytedance/gopkg/lang/mcache"
)

// Pool caches Arena backing slabs in mcache's power-of-two size classes
// so that
// code which repeatedly constructs and discards an Allocator (typically
// benchmarks and tests that run a scenario thousands of times, per
// spec.md's own end-to-end scenario 3) does not pay make()+zero on
// every iteration.
//
// Pool wraps github.com/bytedance/gopkg/lang/mcache instead of a
// hand-rolled sync.Pool: mcache already implements the size-classed
// get/put discipline this needs, and is the pack's established way to
// borrow and return scratch []byte buffers (see DESIGN.md).
type Pool struct{}

// NewPool returns a ready-to-use Pool. A Pool has no state of its own;
// the zero value is usable, NewPool exists for symmetry with the rest
// of the package's constructors.
func NewPool() *Pool { return &Pool{} }

// Get returns an Arena able to grow to at least reserveCap bytes,
// reusing a pooled backing slab of at least that size when one is
// available; its Cap() is the slab's capacity, which mcache rounds up
// to a power of two.
func (p *Pool) Get(reserveCap int) (*Arena, error) {
	if reserveCap <= 0 {
		return nil, fmt.Errorf("region: reserveCap must be > 0, got %d", reserveCap)
	}
	buf := mcache.Malloc(0, reserveCap)
	return &Arena{buf: buf[:0:cap(buf)]}, nil
}

// put returns a released Arena's backing slab to the pool. It is called
// by Arena.Release and never by client code directly.
func (p *Pool) put(reserveCap int, buf []byte) {
	mcache.Free(buf[:cap(buf)])
}
