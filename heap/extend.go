package heap

import (
	"unsafe"

	"github.com/segfly/segheap/internal/blockhdr"
)

// extendHeap grows the region by bytes bytes and folds the new space
// into one additional free block, per spec.md §4.9. The trick, same as
// a textbook sbrk-backed allocator, is that the heap's old epilogue
// header is reused as the new free block's header: the epilogue
// occupies exactly 8 bytes with size 0, and the region guarantees the
// bytes immediately following it are the newly committed space, so no
// separate bookkeeping is needed to find where the new block starts.
func (a *Allocator) extendHeap(bytes uint32) (unsafe.Pointer, error) {
	if _, err := a.region.Grow(int(bytes)); err != nil {
		return nil, err
	}

	block := a.epilogue
	prevSize := blockhdr.PrevBlockSize(block)
	blockhdr.Write(block, bytes, false, prevSize)

	newEpilogue := blockhdr.Next(block, bytes)
	blockhdr.Write(newEpilogue, 0, true, bytes)
	a.epilogue = newEpilogue

	grown := a.coalesce(block)
	a.recent.push(opRecord{kind: opExtend, resultSize: int(bytes)})
	return grown, nil
}
