// Package heap implements a segregated free-list dynamic memory
// allocator over a growable byte region, in the shape of a classic
// sbrk-backed allocator: fixed 8-byte in-band block headers, boundary
// (footerless) coalescing, and a directory of size-class free lists
// searched first-fit.
package heap

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/segfly/segheap/internal/blockhdr"
	"github.com/segfly/segheap/region"
)

// ErrOutOfMemory is returned by Malloc and Realloc when the underlying
// region cannot be grown enough to satisfy the request.
var ErrOutOfMemory = errors.New("heap: out of memory")

// recentTrailCapacity bounds Stats().Recent(); it is a debugging aid,
// not part of the allocator's addressable state.
const recentTrailCapacity = 64

// Allocator is a segregated free-list allocator over a region.Region.
// It is not safe for concurrent use: like the region it is built on,
// an Allocator is meant to be owned and driven by a single goroutine.
type Allocator struct {
	region region.Region
	base   unsafe.Pointer

	prologue unsafe.Pointer
	epilogue unsafe.Pointer

	freeNum int

	chunkSize  int
	extendSize int
	smoothLow  int
	smoothHigh int

	allocCount int
	recent     *recentTrail
}

// New initializes an Allocator over r: it grows r to make room for the
// NumBuckets-slot directory and an initial heap image bracketed by a
// prologue and epilogue sentinel (spec.md §4.3), and pushes the
// initial free block (everything between the two sentinels) onto the
// directory.
func New(r region.Region, opts ...Option) (*Allocator, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			return nil, err
		}
	}

	dirBytes := NumBuckets * 8
	if _, err := r.Grow(dirBytes); err != nil {
		return nil, fmt.Errorf("heap: allocate directory: %w", err)
	}

	a := &Allocator{
		region:     r,
		base:       r.Low(),
		chunkSize:  cfg.chunkSize,
		extendSize: cfg.extendSize,
		smoothLow:  cfg.smoothLow,
		smoothHigh: cfg.smoothHigh,
		recent:     newRecentTrail(recentTrailCapacity),
	}
	for i := 0; i < NumBuckets; i++ {
		a.setDirHead(i, 0)
	}

	heapPtr, err := r.Grow(cfg.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("heap: allocate initial heap image: %w", err)
	}

	prologue := heapPtr
	blockhdr.Write(prologue, 8, true, 0)

	initBlock := blockhdr.Next(prologue, 8)
	initSize := roundDown(uint32(cfg.chunkSize-16), 8)
	blockhdr.Write(initBlock, initSize, false, 8)

	epilogue := blockhdr.Next(initBlock, initSize)
	blockhdr.Write(epilogue, 0, true, initSize)

	a.prologue = prologue
	a.epilogue = epilogue
	a.addFree(initBlock)

	return a, nil
}

// Malloc returns a pointer to a newly allocated, unzeroed payload of at
// least size bytes, per spec.md §4.4. size == 0 is treated as size 1,
// matching malloc(3)'s convention of still returning a distinct,
// freeable pointer.
func (a *Allocator) Malloc(size int) (unsafe.Pointer, error) {
	if size < 0 {
		return nil, fmt.Errorf("heap: negative size %d", size)
	}
	if size == 0 {
		size = 1
	}

	size = a.smoothed(size)

	asize := roundUp(uint32(size)+blockhdr.Size, 8)
	if asize < MinBlockSize {
		asize = MinBlockSize
	}

	block := a.findFit(asize)
	if block == nil {
		grown, err := a.extendHeap(uint32(a.extendSize))
		if err != nil {
			return nil, ErrOutOfMemory
		}
		block = grown
		if blockhdr.BlockSize(block) < asize {
			return nil, ErrOutOfMemory
		}
	}

	a.place(block, asize)
	a.allocCount++
	payload := blockhdr.Payload(block)
	a.recent.push(opRecord{kind: opMalloc, size: size, payload: int64(a.handleOf(block)), resultSize: int(asize)})
	return payload, nil
}

// smoothed implements spec.md §4.4 step 1: a request whose size falls
// strictly between smoothLow and smoothHigh, and sits within the top
// 1/8 of its power-of-two band, is rounded up to the band's full size.
// This trades a small amount of extra memory for fewer distinct block
// sizes in the mid-size range, reducing fragmentation from churn.
func (a *Allocator) smoothed(size int) int {
	if size <= a.smoothLow || size >= a.smoothHigh {
		return size
	}
	p := nextPow2(uint32(size))
	band := p / smoothBandDenominator * smoothBandNumerator
	if uint32(size) >= p-band {
		return int(p)
	}
	return size
}

// Free releases the block backing payload, which must have been
// returned by a prior call to Malloc or Realloc on the same Allocator
// and not already freed. Freeing nil is a no-op. Freeing an invalid or
// already-freed pointer is undefined behavior and is not detected
// (spec.md §1, §7 place corruption hardening out of scope).
func (a *Allocator) Free(payload unsafe.Pointer) {
	if payload == nil {
		return
	}
	block := blockhdr.FromPayload(payload)
	blockhdr.ClearAlloc(block)
	a.coalesce(block)
	a.allocCount--
	a.recent.push(opRecord{kind: opFree, payload: int64(a.handleOf(block))})
}

// Realloc resizes the allocation backing payload to size bytes,
// preserving min(old payload size, size) bytes of content, and returns
// a pointer to the (possibly new) block. Realloc(nil, size) behaves
// like Malloc(size); Realloc(payload, 0) frees payload and returns
// (nil, nil).
//
// Unlike the implementation spec.md documents as a "known-weak"
// reference point, out-of-memory during the grow path is reported as
// (nil, ErrOutOfMemory) rather than terminating the process; see
// DESIGN.md's Open Question resolutions.
func (a *Allocator) Realloc(payload unsafe.Pointer, size int) (unsafe.Pointer, error) {
	if payload == nil {
		return a.Malloc(size)
	}
	if size <= 0 {
		a.Free(payload)
		return nil, nil
	}

	block := blockhdr.FromPayload(payload)
	oldPayloadSize := int(blockhdr.BlockSize(block)) - blockhdr.Size

	newPayload, err := a.Malloc(size)
	if err != nil {
		return nil, err
	}

	n := oldPayloadSize
	if size < n {
		n = size
	}
	if n > 0 {
		src := unsafe.Slice((*byte)(payload), n)
		dst := unsafe.Slice((*byte)(newPayload), n)
		copy(dst, src)
	}

	a.Free(payload)
	newBlock := blockhdr.FromPayload(newPayload)
	a.recent.push(opRecord{kind: opRealloc, size: size, payload: int64(a.handleOf(newBlock)), resultSize: int(blockhdr.BlockSize(newBlock))})
	return newPayload, nil
}

// roundUp rounds x up to the nearest multiple of n, where n is a power
// of two.
func roundUp(x, n uint32) uint32 {
	return (x + n - 1) &^ (n - 1)
}

// roundDown rounds x down to the nearest multiple of n, where n is a
// power of two.
func roundDown(x, n uint32) uint32 {
	return x &^ (n - 1)
}
