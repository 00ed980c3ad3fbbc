package photometric

import (
	"fmt"

	"github.com/joshuapare/tiffkit/internal/buf"
	"github.com/joshuapare/tiffkit/pkg/types"
)

// paddingToNext returns how much must be added to n to reach the next
// multiple of m.
func paddingToNext(n, m int) int {
	if r := n % m; r != 0 {
		return m - r
	}
	return 0
}

// paddedSize rounds width and height up to multiples of the sub-sampling
// factors.
func paddedSize(width, height, hSub, vSub int) (int, int) {
	return width + paddingToNext(width, hSub), height + paddingToNext(height, vSub)
}

// ExpandChroma up-samples a sub-sampled chroma plane in place.
//
// On entry the plane starts with ceil(width/hSub) × ceil(height/vSub) block
// samples stored row by row. On return the plane holds paddedW × paddedH
// samples, where paddedW and paddedH are width and height rounded up to
// multiples of hSub and vSub, and sample (x, y) equals block (x/hSub, y/vSub).
//
// Destinations are visited last row first and last column first: every
// source index is at most its destination index, so each block sample is
// read before anything can overwrite it.
func ExpandChroma(plane []byte, width, height, hSub, vSub int) error {
	if hSub < 1 || vSub < 1 {
		return fmt.Errorf("sub-sampling %dx%d: %w", hSub, vSub, types.ErrInvalidLayout)
	}
	if hSub == 1 && vSub == 1 {
		return nil
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("plane %dx%d: %w", width, height, types.ErrBufferBounds)
	}

	width, height = paddedSize(width, height, hSub, vSub)
	if _, err := buf.CheckRunBounds(len(plane), 0, height, width); err != nil {
		return fmt.Errorf("chroma plane %dx%d: %w", width, height, err)
	}

	blocksPerRow := width / hSub
	for row := height - 1; row >= 0; row-- {
		srcRow := row / vSub * blocksPerRow
		dstRow := row * width
		for col := width - 1; col >= 0; col-- {
			plane[dstRow+col] = plane[srcRow+col/hSub]
		}
	}
	return nil
}
