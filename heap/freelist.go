package heap

import (
	"unsafe"

	"github.com/segfly/segheap/internal/blockhdr"
)

// handle is an offset, in bytes, from the region's base address. It is
// used in place of a raw unsafe.Pointer everywhere a free-list link or
// directory slot is persisted in the heap image itself, so that the
// links remain meaningful values even though the block's underlying
// address only matters while the process containing it is alive.
// handle 0 is reserved as the null link: the directory always occupies
// the first NumBuckets*8 bytes of the region, so no real block header
// can ever start at offset 0.
type handle int64

// ptr resolves a handle to its absolute address within a.
func (a *Allocator) ptr(h handle) unsafe.Pointer {
	if h == 0 {
		return nil
	}
	return unsafe.Add(a.base, int64(h))
}

// handleOf computes the handle for a block header at absolute address p.
func (a *Allocator) handleOf(p unsafe.Pointer) handle {
	return handle(uintptr(p) - uintptr(a.base))
}

// Free-list links are stored in the first 16 bytes of a free block's
// payload (spec.md §3): next at offset 0, prev at offset 8. A block
// must be at least MinBlockSize (24 = 8 header + 16 links) bytes for
// this to be safe, which place.go and the initial heap image both
// guarantee.

func getNext(p unsafe.Pointer) handle {
	return handle(*(*int64)(blockhdr.Payload(p)))
}

func setNext(p unsafe.Pointer, h handle) {
	*(*int64)(blockhdr.Payload(p)) = int64(h)
}

func getPrev(p unsafe.Pointer) handle {
	return handle(*(*int64)(unsafe.Add(blockhdr.Payload(p), 8)))
}

func setPrev(p unsafe.Pointer, h handle) {
	*(*int64)(unsafe.Add(blockhdr.Payload(p), 8)) = int64(h)
}

// addFree pushes the free block at p onto the head of its bucket's
// list (spec.md §4.2: insertion order is unspecified, LIFO is simplest
// and matches the teacher's stack-like free-list push in
// unsafex/malloc.BuddyAllocator.free).
func (a *Allocator) addFree(p unsafe.Pointer) {
	b := classify(blockhdr.BlockSize(p))
	h := a.handleOf(p)
	oldHead := a.dirHead(b)
	setNext(p, oldHead)
	setPrev(p, 0)
	if oldHead != 0 {
		setPrev(a.ptr(oldHead), h)
	}
	a.setDirHead(b, h)
	a.freeNum++
}

// removeFree unlinks the free block at p from its bucket's list.
func (a *Allocator) removeFree(p unsafe.Pointer) {
	b := classify(blockhdr.BlockSize(p))
	prev := getPrev(p)
	next := getNext(p)
	if prev == 0 {
		a.setDirHead(b, next)
	} else {
		setNext(a.ptr(prev), next)
	}
	if next != 0 {
		setPrev(a.ptr(next), prev)
	}
	a.freeNum--
}
