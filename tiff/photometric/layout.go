package photometric

import (
	"fmt"

	"github.com/joshuapare/tiffkit/pkg/types"
)

// Layout describes the samples of a strip, as read from the container tags.
type Layout struct {
	// Photometric is the PhotometricInterpretation tag.
	Photometric types.Photometric

	// Planar is the PlanarConfiguration tag. Zero is treated as chunky.
	Planar types.PlanarConfig

	// BitsPerSample holds one entry per channel, including the alpha channel
	// when present. Entries must be whole bytes.
	BitsPerSample []int

	// ByteOrder of multi-byte samples.
	ByteOrder types.ByteOrder

	// ExtraSamples describes the channel after the color channels.
	// Only consulted when such a channel exists.
	ExtraSamples types.ExtraSamples

	// Subsampling holds the horizontal and vertical YCbCr sub-sampling
	// factors. A zero entry means 1 (no sub-sampling).
	Subsampling [2]int

	// ReferenceBlackWhite holds six rationals (Y, Cb, Cr black/white pairs).
	// Nil selects the TIFF default.
	ReferenceBlackWhite []types.Rational

	// YCbCrCoefficients holds the luma weights of red, green and blue.
	// Nil selects the TIFF default (ITU-R BT.601).
	YCbCrCoefficients []types.Rational
}

// Channels returns the number of channels, alpha included.
func (l Layout) Channels() int { return len(l.BitsPerSample) }

// planar reports whether channels are stored as separate planes.
func (l Layout) planar() bool { return l.Planar == types.PlanarSeparate }

// subsampling returns the normalized sub-sampling factors.
func (l Layout) subsampling() (int, int) {
	h, v := l.Subsampling[0], l.Subsampling[1]
	if h == 0 {
		h = 1
	}
	if v == 0 {
		v = 1
	}
	return h, v
}

// sampleBytes converts the per-channel bit widths to byte widths after
// checking them against limits.
func (l Layout) sampleBytes(limits types.Limits) ([]int, error) {
	widths := make([]int, len(l.BitsPerSample))
	for i, bits := range l.BitsPerSample {
		if err := limits.CheckBits(bits); err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		widths[i] = bits / 8
	}
	return widths, nil
}

// Options controls decoder construction.
type Options struct {
	// Limits bounds region sizes, sample widths and scratch allocations.
	// If nil, types.DefaultLimits() is used.
	Limits *types.Limits
}

func (o *Options) limits() types.Limits {
	if o == nil || o.Limits == nil {
		return types.DefaultLimits()
	}
	return *o.Limits
}
