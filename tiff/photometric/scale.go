package photometric

import (
	"math"

	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/pixel"
)

// Scaler normalizes integer channel samples to the canonical 0..1 range.
//
// Channel i is divided by 2^Bits[i]-1. Index 3 is alpha; a zero alpha width
// means the samples carry no alpha and the pixel is opaque. Associated
// (premultiplied) color is un-premultiplied because the canonical pixel holds
// straight alpha; at full-scale alpha this is the identity.
type Scaler struct {
	max        [4]float64
	hasAlpha   bool
	associated bool
}

// NewScaler returns a Scaler for the given channel bit widths (R, G, B, A).
func NewScaler(bits [4]int, alpha types.ExtraSamples) Scaler {
	var s Scaler
	for i, b := range bits {
		s.max[i] = maxValue(b)
	}
	s.hasAlpha = bits[3] > 0
	s.associated = s.hasAlpha && alpha.Associated()
	return s
}

// maxValue returns 2^bits-1 as float64. Widths up to 64 bits are exact
// enough for a float32 result.
func maxValue(bits int) float64 {
	if bits <= 0 {
		return 1
	}
	return math.Ldexp(1, bits) - 1
}

func (s Scaler) norm(i int, v uint64) float32 {
	return float32(float64(v) / s.max[i])
}

// Scale returns the canonical pixel for one set of samples. a is ignored
// when the scaler has no alpha channel.
func (s Scaler) Scale(r, g, b, a uint64) pixel.RGBA {
	p := pixel.RGBA{R: s.norm(0, r), G: s.norm(1, g), B: s.norm(2, b), A: 1}
	if !s.hasAlpha {
		return p
	}
	p.A = s.norm(3, a)
	if s.associated {
		p = unpremultiply(p)
	}
	return p
}

// Gray returns the canonical pixel for a gray sample (channel 0 width) with
// optional alpha. whiteIsZero inverts the intensity.
func (s Scaler) Gray(v, a uint64, whiteIsZero bool) pixel.RGBA {
	y := s.norm(0, v)
	if whiteIsZero {
		y = 1 - y
	}
	p := pixel.RGBA{R: y, G: y, B: y, A: 1}
	if !s.hasAlpha {
		return p
	}
	p.A = s.norm(3, a)
	if s.associated {
		p = unpremultiply(p)
	}
	return p
}

func unpremultiply(p pixel.RGBA) pixel.RGBA {
	if p.A <= 0 {
		return pixel.RGBA{}
	}
	if p.A >= 1 {
		return p
	}
	return pixel.RGBA{
		R: min(p.R/p.A, 1),
		G: min(p.G/p.A, 1),
		B: min(p.B/p.A, 1),
		A: p.A,
	}
}
