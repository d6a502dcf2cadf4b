package heap

import (
	"fmt"
	"unsafe"

	"github.com/cloudwego/gopkg/hash/xfnv"
	"github.com/segfly/segheap/internal/blockhdr"
)

// Op is a snapshot of one recorded operation, returned by Stats.Recent.
type Op struct {
	Kind       string
	Size       int
	ResultSize int
}

// Stats summarizes an Allocator's current state. It is a diagnostic
// snapshot, not something the allocator consults while servicing
// Malloc/Free/Realloc.
type Stats struct {
	TotalBytes int
	FreeBytes  int
	FreeNum    int
	AllocCount int
	Checksum   uint64

	recent []opRecord
}

// Recent returns, oldest first, the last operations performed on the
// Allocator (bounded by an internal fixed-size trail).
func (s Stats) Recent() []Op {
	out := make([]Op, len(s.recent))
	for i, r := range s.recent {
		out[i] = Op{Kind: r.kind.String(), Size: r.size, ResultSize: r.resultSize}
	}
	return out
}

// Stats computes a snapshot of the Allocator's current state by
// walking the heap image from the first block after the prologue to
// the epilogue. It does not validate consistency; use Verify for that.
func (a *Allocator) Stats() Stats {
	s := Stats{
		FreeNum:    a.freeNum,
		AllocCount: a.allocCount,
		recent:     a.recent.snapshot(),
	}

	h := xfnv.Hash(nil)
	block := blockhdr.Next(a.prologue, 8)
	for block != a.epilogue {
		size := blockhdr.BlockSize(block)
		s.TotalBytes += int(size)
		if !blockhdr.IsAlloc(block) {
			s.FreeBytes += int(size)
		}
		h = mixChecksum(h, block, int(size))
		block = blockhdr.Next(block, size)
	}
	s.Checksum = h
	return s
}

// Verify walks the heap image checking prologue/epilogue sentinels,
// that every block is at least MinBlockSize with a non-zero
// prev_block_size, prev_block_size agreement between neighbors, that no
// two physically adjacent blocks are free, and that the number of
// blocks with the allocation bit clear equals freeNum. It returns the
// first violation found, or nil. It does not walk the free lists or
// check which bucket a free block sits in.
func (a *Allocator) Verify() error {
	if blockhdr.BlockSize(a.prologue) != 8 || !blockhdr.IsAlloc(a.prologue) {
		return fmt.Errorf("heap: corrupt prologue")
	}
	if blockhdr.BlockSize(a.epilogue) != 0 || !blockhdr.IsAlloc(a.epilogue) {
		return fmt.Errorf("heap: corrupt epilogue")
	}

	prevFree := false
	countedFree := 0
	block := blockhdr.Next(a.prologue, 8)
	for block != a.epilogue {
		size := blockhdr.BlockSize(block)
		if size < MinBlockSize {
			return fmt.Errorf("heap: block at offset %d smaller than MinBlockSize: %d", a.handleOf(block), size)
		}
		if blockhdr.PrevBlockSize(block) == 0 {
			return fmt.Errorf("heap: block at offset %d has zero prev_block_size", a.handleOf(block))
		}

		free := !blockhdr.IsAlloc(block)
		if free && prevFree {
			return fmt.Errorf("heap: two physically adjacent free blocks at offset %d", a.handleOf(block))
		}
		if free {
			countedFree++
		}
		prevFree = free

		next := blockhdr.Next(block, size)
		if next != a.epilogue && blockhdr.PrevBlockSize(next) != size {
			return fmt.Errorf("heap: prev_block_size mismatch at offset %d", a.handleOf(next))
		}
		block = next
	}

	if countedFree != a.freeNum {
		return fmt.Errorf("heap: free block count mismatch: walked %d, directory tracks %d", countedFree, a.freeNum)
	}
	return nil
}

// mixChecksum folds one block's header and payload bytes into a
// running digest by XORing their xfnv hashes into h. Only the allocation bit and size matter for
// free blocks (their payload holds free-list links, not user data), so
// free blocks are hashed header-only to keep Stats().Checksum stable
// across equivalent heap states that differ only in free-list order.
func mixChecksum(h uint64, block unsafe.Pointer, size int) uint64 {
	hdr := unsafe.Slice((*byte)(block), blockhdr.Size)
	h ^= xfnv.Hash(hdr)
	if blockhdr.IsAlloc(block) && size > blockhdr.Size {
		payload := unsafe.Slice((*byte)(blockhdr.Payload(block)), size-blockhdr.Size)
		h ^= xfnv.Hash(payload)
	}
	return h
}
