package heap

import (
	"unsafe"

	"github.com/segfly/segheap/internal/blockhdr"
)

// place installs an allocated block of exactly asize bytes at p, which
// must be a free block of at least asize bytes (as returned by
// findFit), per spec.md §4.6. If the leftover after carving out asize
// bytes is at least MinBlockSize, it is split off as a new free block
// and pushed onto the directory; otherwise the whole block is handed
// out as a small internal-fragmentation splinter.
func (a *Allocator) place(p unsafe.Pointer, asize uint32) {
	blockSize := blockhdr.BlockSize(p)
	remainder := blockSize - asize
	a.removeFree(p)

	if remainder >= MinBlockSize {
		blockhdr.SetBlockSize(p, asize)
		blockhdr.SetAlloc(p)

		next := blockhdr.Next(p, asize)
		blockhdr.Write(next, remainder, false, asize)

		after := blockhdr.Next(next, remainder)
		blockhdr.SetPrevBlockSize(after, remainder)

		a.addFree(next)
		return
	}

	blockhdr.SetAlloc(p)
}
