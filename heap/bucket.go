package heap

import "math/bits"

// classify maps a block size to a bucket index in [0, NumBuckets-1],
// per spec.md §4.1.
//
// Below largeThreshold, sizes are rounded up to the next power of two
// (via the standard bit-smear also used by
// unsafex/malloc.BuddyAllocator.getOrderForSize in the teacher repo)
// and mapped {32,64,128,256,512,1024} -> {0,1,2,3,4,5}; sizes <= 32
// yield 0. At and above largeThreshold, bucket index grows by a fixed
// 800-byte arithmetic stride, biased by +575 so band edges fall at
// 1025, 1825, 2625, ...; bucket NumBuckets-1 is an overflow bucket
// holding everything beyond the last arithmetic band, including the
// allocator's initial free block.
func classify(size uint32) int {
	if size < largeThreshold {
		p := nextPow2(size)
		shift := bits.TrailingZeros32(p) // 32->5, 64->6, ..., 1024->10
		idx := shift - 5
		if idx < 0 {
			idx = 0
		}
		return idx
	}

	idx := (int(size)+575)/largeStep + 4
	if idx > NumBuckets-1 {
		idx = NumBuckets - 1
	}
	return idx
}

// nextPow2 rounds size up to the next power of two via the classic
// bit-smear (subtract 1, OR right-shifts by 1/2/4/8/16, add 1). size
// of 0 rounds up to 1.
func nextPow2(size uint32) uint32 {
	if size == 0 {
		return 1
	}
	v := size - 1
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return v + 1
}
