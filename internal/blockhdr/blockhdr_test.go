package blockhdr

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestWriteAndRead(t *testing.T) {
	buf := make([]byte, 64)
	p := unsafe.Pointer(&buf[0])

	Write(p, 32, true, 8)
	assert.Equal(t, uint32(32), BlockSize(p))
	assert.True(t, IsAlloc(p))
	assert.Equal(t, uint32(8), PrevBlockSize(p))
}

func TestSetAllocClearAlloc(t *testing.T) {
	buf := make([]byte, 64)
	p := unsafe.Pointer(&buf[0])

	Write(p, 40, false, 0)
	assert.False(t, IsAlloc(p))
	assert.Equal(t, uint32(40), BlockSize(p))

	SetAlloc(p)
	assert.True(t, IsAlloc(p))
	assert.Equal(t, uint32(40), BlockSize(p), "setting alloc must not perturb size")

	ClearAlloc(p)
	assert.False(t, IsAlloc(p))
}

func TestSetBlockSizePreservesAllocBit(t *testing.T) {
	buf := make([]byte, 64)
	p := unsafe.Pointer(&buf[0])

	Write(p, 24, true, 0)
	SetBlockSize(p, 56)
	assert.Equal(t, uint32(56), BlockSize(p))
	assert.True(t, IsAlloc(p), "SetBlockSize must preserve the allocation bit")
}

func TestNextPrev(t *testing.T) {
	buf := make([]byte, 64)
	p := unsafe.Pointer(&buf[0])

	Write(p, 24, false, 0)
	next := Next(p, 24)
	assert.Equal(t, unsafe.Add(p, 24), next)

	Write(next, 16, true, 24)
	prev := Prev(next, PrevBlockSize(next))
	assert.Equal(t, p, prev)
}

func TestPayloadRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	p := unsafe.Pointer(&buf[0])

	payload := Payload(p)
	assert.Equal(t, unsafe.Add(p, Size), payload)
	assert.Equal(t, p, FromPayload(payload))
}
