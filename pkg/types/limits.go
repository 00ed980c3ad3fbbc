package types

import "fmt"

// ============================================================================
// Decode Limits Constants
// ============================================================================
// These constants bound what a single decode call is allowed to touch. TIFF
// itself permits 32-bit dimensions; the defaults below keep a malformed tag
// from turning into a multi-gigabyte allocation.

const (
	// MaxDimensionDefault is the default maximum width or height in pixels.
	MaxDimensionDefault = 1 << 16 // 65,536

	// MaxDimensionRelaxed permits the full TIFF LONG range used by some
	// scientific imagery.
	MaxDimensionRelaxed = 1 << 20 // 1,048,576

	// MaxDimensionStrict is a conservative bound for untrusted input.
	MaxDimensionStrict = 1 << 13 // 8,192

	// MaxBitsPerSampleDefault is the widest sample the decoders read.
	MaxBitsPerSampleDefault = 32

	// MaxBitsPerSampleStrict rejects anything wider than 16-bit samples.
	MaxBitsPerSampleStrict = 16

	// MaxScratchBytesDefault bounds one scratch allocation (chroma planes).
	MaxScratchBytesDefault = 256 << 20 // 256 MB

	// MaxScratchBytesRelaxed bounds one scratch allocation for huge images.
	MaxScratchBytesRelaxed = 4 << 30 // 4 GB

	// MaxScratchBytesStrict bounds one scratch allocation for untrusted input.
	MaxScratchBytesStrict = 16 << 20 // 16 MB
)

// Limits defines constraints for decode operations to prevent resource
// exhaustion from malformed format parameters.
type Limits struct {
	// MaxWidth is the maximum region width in pixels.
	MaxWidth int

	// MaxHeight is the maximum region height in pixels.
	MaxHeight int

	// MaxBitsPerSample is the widest channel sample accepted.
	// Samples are always whole bytes, so this is a multiple of 8.
	MaxBitsPerSample int

	// MaxScratchBytes is the largest native scratch buffer a decoder may
	// acquire for a single call.
	MaxScratchBytes int64
}

// DefaultLimits returns limits suitable for ordinary images.
func DefaultLimits() Limits {
	return Limits{
		MaxWidth:         MaxDimensionDefault,
		MaxHeight:        MaxDimensionDefault,
		MaxBitsPerSample: MaxBitsPerSampleDefault,
		MaxScratchBytes:  MaxScratchBytesDefault,
	}
}

// RelaxedLimits returns more permissive limits for very large images.
// Use with caution - a single decode may acquire gigabytes of scratch space.
func RelaxedLimits() Limits {
	return Limits{
		MaxWidth:         MaxDimensionRelaxed,
		MaxHeight:        MaxDimensionRelaxed,
		MaxBitsPerSample: MaxBitsPerSampleDefault,
		MaxScratchBytes:  MaxScratchBytesRelaxed,
	}
}

// StrictLimits returns conservative limits for untrusted input.
func StrictLimits() Limits {
	return Limits{
		MaxWidth:         MaxDimensionStrict,
		MaxHeight:        MaxDimensionStrict,
		MaxBitsPerSample: MaxBitsPerSampleStrict,
		MaxScratchBytes:  MaxScratchBytesStrict,
	}
}

// CheckRegion reports whether r fits the dimension limits.
// Zero-valued fields are treated as unlimited.
func (l Limits) CheckRegion(r Region) error {
	if l.MaxWidth > 0 && r.Width > l.MaxWidth {
		return fmt.Errorf("region width %d exceeds limit %d: %w", r.Width, l.MaxWidth, ErrUnsupported)
	}
	if l.MaxHeight > 0 && r.Height > l.MaxHeight {
		return fmt.Errorf("region height %d exceeds limit %d: %w", r.Height, l.MaxHeight, ErrUnsupported)
	}
	return nil
}

// CheckBits reports whether a channel of the given bit width is accepted.
func (l Limits) CheckBits(bits int) error {
	if bits <= 0 || bits%8 != 0 {
		return fmt.Errorf("%d bits per sample: %w", bits, ErrUnsupported)
	}
	if l.MaxBitsPerSample > 0 && bits > l.MaxBitsPerSample {
		return fmt.Errorf("%d bits per sample exceeds limit %d: %w", bits, l.MaxBitsPerSample, ErrUnsupported)
	}
	return nil
}

// CheckScratch reports whether a scratch allocation of n bytes is accepted.
func (l Limits) CheckScratch(n int) error {
	if l.MaxScratchBytes > 0 && int64(n) > l.MaxScratchBytes {
		return fmt.Errorf("scratch of %d bytes exceeds limit %d: %w", n, l.MaxScratchBytes, ErrAllocationFailure)
	}
	return nil
}
