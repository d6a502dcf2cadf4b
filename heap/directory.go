package heap

import "unsafe"

// The directory is the first NumBuckets*8 bytes of the region: one
// 8-byte handle per bucket, holding the head of that bucket's free
// list (spec.md §3). It is written once, during New, and thereafter
// only through dirHead/setDirHead.

func (a *Allocator) dirHead(bucket int) handle {
	p := unsafe.Add(a.base, bucket*8)
	return handle(*(*int64)(p))
}

func (a *Allocator) setDirHead(bucket int, h handle) {
	p := unsafe.Add(a.base, bucket*8)
	*(*int64)(p) = int64(h)
}
