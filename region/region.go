// Package region provides the byte-region abstraction the allocator in
// package heap is built on: a single contiguous, monotonically growable
// span of bytes, analogous to a classic sbrk(2)-style memory system.
//
// A Region is not safe for concurrent access. It is designed for
// consumption by a single heap.Allocator from one goroutine only, the
// same contract package heap itself carries.
package region

import (
	"errors"
	"unsafe"
)

// ErrOutOfMemory is returned by Grow when the region cannot be extended
// by the requested number of bytes.
var ErrOutOfMemory = errors.New("region: out of memory")

// A Region is the host "memory system" the allocator grows into. Bytes
// returned by a successful Grow are zero-valued only if the concrete
// implementation documents that guarantee; heap.Allocator never assumes
// it, since every byte it touches is immediately overwritten with a
// header or payload.
type Region interface {
	// Grow extends the region by n bytes and returns a pointer to the
	// first newly added byte. It returns ErrOutOfMemory if the region
	// cannot grow by n bytes.
	Grow(n int) (unsafe.Pointer, error)

	// Low returns the address of the first byte ever handed out by
	// Grow. It is used to translate between absolute pointers and the
	// offset-based handles described in SPEC_FULL.md §3.
	Low() unsafe.Pointer

	// High returns the address one past the last byte currently
	// committed by Grow.
	High() unsafe.Pointer

	// Size returns High - Low, the number of bytes currently committed.
	Size() int
}
