package heap

// Tunable constants, per spec.md §6. All are compile-time defaults;
// New accepts Options that override the growth-related ones (see
// options.go) the same way unsafex/malloc.NewBuddyAllocatorWithBlockSize
// exposes its tunables as explicit constructor parameters.
const (
	// NumBuckets is the number of segregated free-list buckets in the
	// directory (spec.md §3, §4.1).
	NumBuckets = 47

	// MinBlockSize is the minimum size, in bytes, of any block:
	// 8 bytes of header plus 16 bytes for the free-list next/prev
	// links (spec.md §3).
	MinBlockSize = 24

	// DefaultChunkSize is the number of bytes requested from the
	// region for the initial heap image during New (spec.md §4.3).
	DefaultChunkSize = 58176

	// DefaultExtendSize is the number of bytes requested from the
	// region when Malloc misses and must grow the heap (spec.md §4.4).
	DefaultExtendSize = 4400 * 8

	// largeThreshold is the size, in bytes, at which the bucket
	// classifier switches from geometric to arithmetic stepping
	// (spec.md §4.1).
	largeThreshold = 1024

	// largeStep is the arithmetic bucket width above largeThreshold.
	largeStep = 800

	// largeBucketFastPath is the bucket index at and above which
	// find_fit uses the bucket-head fast path regardless of free_num
	// (spec.md §4.5). spec.md calls this "a tuning constant, not a
	// semantic threshold".
	largeBucketFastPath = 44

	// defaultSmoothLow and defaultSmoothHigh bound the size-smoothing
	// window of spec.md §4.4 step 1: (100, 500), exclusive on both
	// ends.
	defaultSmoothLow  = 100
	defaultSmoothHigh = 500

	// smoothBandNumerator/Denominator express "within the top 1/8 of
	// its power-of-two band" without floating point.
	smoothBandNumerator   = 1
	smoothBandDenominator = 8
)
