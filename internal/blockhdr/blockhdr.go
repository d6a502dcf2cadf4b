// Package blockhdr implements the 8-byte in-band block header described
// in spec.md §3: a packed block_size (with the allocation bit folded
// into its otherwise-unused low bits, since every block size is a
// multiple of 8) followed by prev_block_size, the size of the
// physically preceding block in heap address order.
//
// The header carries no magic number and performs no corruption
// detection: spec.md places "security hardening against heap
// corruption" and detecting invalid/double-freed pointers explicitly
// out of scope (§1, §7); see DESIGN.md for why the teacher's own
// magic-number header check was not ported here.
//
// The read/write primitives mirror the pointer-arithmetic idiom of
// unsafex/malloc.BuddyAllocator in the teacher repo: a cached
// unsafe.Pointer to the block and unsafe.Add offsets, no bounds-checked
// slice indexing on the hot path.
package blockhdr

import "unsafe"

// Size is the fixed size, in bytes, of a block header.
const Size = 8

// allocBit is the allocation flag folded into the low bit of block_size.
const allocBit uint32 = 1

// sizeMask clears the allocation bit (and the two spare low bits
// reserved by the 8-byte alignment) from a packed block_size word.
const sizeMask uint32 = ^uint32(7)

// BlockSize returns the size, in bytes, of the block starting at p,
// with the allocation flag masked out.
func BlockSize(p unsafe.Pointer) uint32 {
	return *(*uint32)(p) & sizeMask
}

// IsAlloc reports whether the block starting at p is currently
// allocated.
func IsAlloc(p unsafe.Pointer) bool {
	return *(*uint32)(p)&allocBit != 0
}

// SetBlockSize rewrites the block_size field at p, preserving the
// current allocation bit.
func SetBlockSize(p unsafe.Pointer, size uint32) {
	word := (*uint32)(p)
	*word = (size &^ 7) | (*word & allocBit)
}

// SetAlloc marks the block at p allocated.
func SetAlloc(p unsafe.Pointer) {
	word := (*uint32)(p)
	*word |= allocBit
}

// ClearAlloc marks the block at p free.
func ClearAlloc(p unsafe.Pointer) {
	word := (*uint32)(p)
	*word &^= allocBit
}

// PrevBlockSize returns the size of the block immediately preceding p
// in heap address order.
func PrevBlockSize(p unsafe.Pointer) uint32 {
	return *(*uint32)(unsafe.Add(p, 4))
}

// SetPrevBlockSize rewrites the prev_block_size field at p.
func SetPrevBlockSize(p unsafe.Pointer, size uint32) {
	*(*uint32)(unsafe.Add(p, 4)) = size
}

// Write installs a complete header at p in one call: block_size (with
// alloc folded in) and prev_block_size.
func Write(p unsafe.Pointer, size uint32, alloc bool, prevSize uint32) {
	word := size &^ 7
	if alloc {
		word |= allocBit
	}
	*(*uint32)(p) = word
	*(*uint32)(unsafe.Add(p, 4)) = prevSize
}

// Next returns a pointer to the header of the block physically
// following the block at p, given that block's own block_size.
func Next(p unsafe.Pointer, size uint32) unsafe.Pointer {
	return unsafe.Add(p, int(size))
}

// Prev returns a pointer to the header of the block physically
// preceding the block at p, given that block's own prev_block_size.
func Prev(p unsafe.Pointer, prevSize uint32) unsafe.Pointer {
	return unsafe.Add(p, -int(prevSize))
}

// Payload returns a pointer to the first payload byte of the block at
// p (immediately past its 8-byte header).
func Payload(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(p, Size)
}

// FromPayload recovers a block header pointer from a payload pointer
// previously returned by Payload (or, equivalently, by
// heap.Allocator.Malloc/Realloc).
func FromPayload(payload unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(payload, -Size)
}
