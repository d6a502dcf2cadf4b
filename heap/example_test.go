package heap

import (
	"fmt"

	"github.com/segfly/segheap/internal/blockhdr"
	"github.com/segfly/segheap/region"
)

func Example() {
	r, _ := region.NewArena(1 << 20)
	a, _ := New(r)

	p1, _ := a.Malloc(64)
	p2, _ := a.Malloc(256)

	b1 := classify(blockhdr.BlockSize(blockhdr.FromPayload(p1)))
	b2 := classify(blockhdr.BlockSize(blockhdr.FromPayload(p2)))
	fmt.Printf("bucket(64 block)=%d bucket(256 block)=%d\n", b1, b2)

	a.Free(p1)
	a.Free(p2)

	// Output:
	// bucket(64 block)=2 bucket(256 block)=4
}
