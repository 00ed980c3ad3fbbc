package buf

import (
	"fmt"
	"math"

	"github.com/joshuapare/tiffkit/pkg/types"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// Used for rows * rowBytes and width * samplesPerPixel calculations.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	// For positive numbers, check if result would overflow
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	// For negative numbers
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	// Mixed signs - check against MinInt
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// CheckRunBounds validates that count elements of elementSize bytes fit in a
// buffer of bufLen bytes starting at offset. Returns the end offset if valid,
// or an error wrapping types.ErrBufferBounds describing the failure.
//
// Decoders validate a whole strip before writing the first pixel:
//
//	need := (height-1)*rowStride + width
//	if _, err := buf.CheckRunBounds(len(plane), 0, need, sampleBytes); err != nil {
//	    return fmt.Errorf("luma plane: %w", err)
//	}
func CheckRunBounds(bufLen, offset, count, elementSize int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset %d: %w", offset, types.ErrBufferBounds)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count %d: %w", count, types.ErrBufferBounds)
	}
	if elementSize < 0 {
		return 0, fmt.Errorf("negative element size %d: %w", elementSize, types.ErrBufferBounds)
	}

	// Check count * elementSize for overflow
	totalSize, ok := MulOverflowSafe(count, elementSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d: %w", count, elementSize, types.ErrBufferBounds)
	}

	// Check offset + totalSize for overflow
	endOffset, ok := AddOverflowSafe(offset, totalSize)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d: %w", offset, totalSize, types.ErrBufferBounds)
	}

	// Check bounds
	if endOffset > bufLen {
		return 0, fmt.Errorf("end=%d > len=%d: %w", endOffset, bufLen, types.ErrBufferBounds)
	}

	return endOffset, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
