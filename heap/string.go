package heap

import (
	"bytes"
	"fmt"

	"github.com/segfly/segheap/internal/blockhdr"
	"github.com/segfly/segheap/internal/unsafeconv"
)

// String renders a one-line-per-block debug dump of the heap image:
// offset, size, and allocation state for every block between the
// prologue and epilogue. It is meant for interactive debugging and
// tests, not for parsing.
func (a *Allocator) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "heap: %d bytes committed, %d free blocks\n", a.region.Size(), a.freeNum)

	block := blockhdr.Next(a.prologue, 8)
	for block != a.epilogue {
		size := blockhdr.BlockSize(block)
		state := "alloc"
		if !blockhdr.IsAlloc(block) {
			state = "free"
		}
		fmt.Fprintf(&b, "  +%-8d size=%-6d %s\n", a.handleOf(block), size, state)
		block = blockhdr.Next(block, size)
	}

	// b.Bytes() is never touched again after this call, so handing its
	// backing array to ByteSliceToString without copying is safe.
	return unsafeconv.ByteSliceToString(b.Bytes())
}
