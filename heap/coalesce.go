package heap

import (
	"unsafe"

	"github.com/segfly/segheap/internal/blockhdr"
)

// coalesce merges the free block at p with whichever physical
// neighbors are themselves free, per spec.md §4.8's four boundary-tag
// cases, pushes the resulting block onto the directory, and returns
// its (possibly relocated-to-the-left) header pointer.
//
// p must already be marked free; coalesce never inspects or changes
// the allocation bit of p itself, only of its neighbors.
func (a *Allocator) coalesce(p unsafe.Pointer) unsafe.Pointer {
	size := blockhdr.BlockSize(p)
	next := blockhdr.Next(p, size)
	prevSize := blockhdr.PrevBlockSize(p)
	prev := blockhdr.Prev(p, prevSize)

	nextFree := !blockhdr.IsAlloc(next)
	prevFree := prevSize != 0 && !blockhdr.IsAlloc(prev)

	switch {
	case !prevFree && !nextFree:
		// (alloc, alloc): nothing to merge.

	case !prevFree && nextFree:
		a.removeFree(next)
		size += blockhdr.BlockSize(next)
		blockhdr.SetBlockSize(p, size)
		after := blockhdr.Next(p, size)
		blockhdr.SetPrevBlockSize(after, size)

	case prevFree && !nextFree:
		a.removeFree(prev)
		size += blockhdr.BlockSize(prev)
		blockhdr.SetBlockSize(prev, size)
		blockhdr.SetPrevBlockSize(next, size)
		p = prev

	default: // prevFree && nextFree
		a.removeFree(prev)
		a.removeFree(next)
		size += blockhdr.BlockSize(prev) + blockhdr.BlockSize(next)
		blockhdr.SetBlockSize(prev, size)
		after := blockhdr.Next(prev, size)
		blockhdr.SetPrevBlockSize(after, size)
		p = prev
	}

	a.addFree(p)
	return p
}
