package heap

import (
	"unsafe"

	"github.com/segfly/segheap/internal/blockhdr"
)

// findFit searches the directory for a free block of at least asize
// bytes, per spec.md §4.5, and returns nil if none exists.
//
// Case A (freeNum==1, or the target bucket is >= largeBucketFastPath):
// scan buckets NumBuckets-1 down to the target bucket, inspecting only
// each bucket's head block. This is cheap and, for the large-bucket
// arithmetic bands, also correct-enough: spec.md calls the bucket>=44
// shortcut "a tuning constant, not a semantic threshold" chosen because
// large-bucket lists are short in practice.
//
// Case B (otherwise): walk the target bucket's list in full looking
// for the first block big enough, then fall back to scanHeadsAscending:
// an upward scan of the larger buckets that returns the first non-empty
// bucket's head without a size check.
func (a *Allocator) findFit(asize uint32) unsafe.Pointer {
	if a.freeNum == 0 {
		return nil
	}
	b := classify(asize)
	if a.freeNum == 1 || b >= largeBucketFastPath {
		return a.scanHeads(b, asize)
	}

	for h := a.dirHead(b); h != 0; h = getNext(a.ptr(h)) {
		p := a.ptr(h)
		if blockhdr.BlockSize(p) >= asize {
			return p
		}
	}
	return a.scanHeadsAscending(b + 1)
}

// scanHeads inspects only the head block of each bucket, descending
// from NumBuckets-1 down to lo, per spec.md §4.5 Case A: this favors
// carving the request out of the largest eligible bucket first,
// leaving smaller buckets' blocks available for smaller requests.
func (a *Allocator) scanHeads(lo int, asize uint32) unsafe.Pointer {
	for i := NumBuckets - 1; i >= lo; i-- {
		h := a.dirHead(i)
		if h == 0 {
			continue
		}
		p := a.ptr(h)
		if blockhdr.BlockSize(p) >= asize {
			return p
		}
	}
	return nil
}

// scanHeadsAscending inspects the head block of each bucket from lo up
// to NumBuckets-1, returning the first non-empty bucket's head with no
// further size check, per spec.md §4.5 Case B's fallback: any bucket
// strictly above b is guaranteed, by construction, to hold only blocks
// that satisfy the request that missed bucket b.
func (a *Allocator) scanHeadsAscending(lo int) unsafe.Pointer {
	for i := lo; i < NumBuckets; i++ {
		if h := a.dirHead(i); h != 0 {
			return a.ptr(h)
		}
	}
	return nil
}
