package heap

import "fmt"

type config struct {
	chunkSize  int
	extendSize int
	smoothLow  int
	smoothHigh int
}

func defaultConfig() config {
	return config{
		chunkSize:  DefaultChunkSize,
		extendSize: DefaultExtendSize,
		smoothLow:  defaultSmoothLow,
		smoothHigh: defaultSmoothHigh,
	}
}

// Option configures a New Allocator. The zero value of every Option
// field keeps spec.md's §6 defaults, mirroring the teacher's
// NewXxxWithBlockSize constructors: tunables are explicit constructor
// parameters, not a config file or environment variable (spec.md §6
// is explicit there is neither).
type Option func(*config) error

// WithChunkSize overrides the number of bytes requested from the
// region for the initial heap image (spec.md's CHUNKSIZE). n must be
// large enough to hold a prologue, epilogue, and one MinBlockSize free
// block: at least 16 + MinBlockSize bytes.
func WithChunkSize(n int) Option {
	return func(c *config) error {
		if n < 16+MinBlockSize {
			return fmt.Errorf("heap: chunk size must be >= %d, got %d", 16+MinBlockSize, n)
		}
		c.chunkSize = n
		return nil
	}
}

// WithExtendSize overrides the number of bytes requested from the
// region when Malloc misses every bucket (spec.md's EXTEND_SIZE). n
// must be large enough to hold an epilogue and one MinBlockSize free
// block: at least 8 + MinBlockSize bytes.
func WithExtendSize(n int) Option {
	return func(c *config) error {
		if n < 8+MinBlockSize {
			return fmt.Errorf("heap: extend size must be >= %d, got %d", 8+MinBlockSize, n)
		}
		c.extendSize = n
		return nil
	}
}

// WithSmoothing overrides the size-smoothing window of spec.md §4.4
// step 1: requests with low < size < high, within the top 1/8 of their
// power-of-two band, are promoted to the band's full size. Set
// low >= high to disable smoothing entirely.
func WithSmoothing(low, high int) Option {
	return func(c *config) error {
		if low < 0 || high < 0 {
			return fmt.Errorf("heap: smoothing window must be non-negative, got (%d, %d)", low, high)
		}
		c.smoothLow = low
		c.smoothHigh = high
		return nil
	}
}
