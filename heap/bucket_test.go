package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGeometric(t *testing.T) {
	tests := []struct {
		size uint32
		want int
	}{
		{1, 0},
		{31, 0},
		{32, 0},
		{33, 1},
		{64, 1},
		{65, 2},
		{128, 2},
		{256, 3},
		{512, 4},
		{1024, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.size), "size=%d", tt.size)
	}
}

func TestClassifyArithmetic(t *testing.T) {
	tests := []struct {
		size uint32
		want int
	}{
		{1025, 6},
		{1824, 6},
		{1825, 7},
		{2624, 7},
		{2625, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.size), "size=%d", tt.size)
	}
}

func TestClassifyOverflowBucket(t *testing.T) {
	assert.Equal(t, NumBuckets-1, classify(1<<20))
	assert.Equal(t, NumBuckets-1, classify(58160)) // the initial free block's size
}

func TestNextPow2(t *testing.T) {
	tests := []struct {
		in   uint32
		want uint32
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{1024, 1024},
		{1025, 2048},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextPow2(tt.in), "in=%d", tt.in)
	}
}
