package photometric

import (
	"fmt"
	"math"

	"github.com/joshuapare/tiffkit/pkg/types"
)

// TIFF defaults for the YCbCr tags.
var (
	DefaultReferenceBlackWhite = []types.Rational{
		{0, 1}, {255, 1}, {128, 1}, {255, 1}, {128, 1}, {255, 1},
	}
	DefaultYCbCrCoefficients = []types.Rational{
		{299, 1000}, {587, 1000}, {114, 1000},
	}
)

// Coding ranges used when expanding codes to their reference interval.
const (
	lumaCodingRange   = 255
	chromaCodingRange = 127
)

// codingRange maps a code from [black, white] onto [0, span].
type codingRange struct {
	f1, f2 float64
}

func newCodingRange(black, white types.Rational, span float64) (codingRange, error) {
	b, w := black.Float(), white.Float()
	if w == b {
		return codingRange{}, fmt.Errorf("reference black %s equals white %s: %w", black, white, types.ErrInvalidLayout)
	}
	f1 := span / (w - b)
	return codingRange{f1: f1, f2: f1 * b}, nil
}

func (c codingRange) expand(code uint8) float64 {
	return float64(code)*c.f1 - c.f2
}

// YCbCrConverter converts luma/chroma codes to RGB using reference
// black/white points and luma coefficients.
type YCbCrConverter struct {
	y, cb, cr codingRange

	cr2r, cb2b float64
	y2g        float64
	cr2g, cb2g float64
}

// NewYCbCrConverter builds a converter. Nil arguments select the TIFF
// defaults. refBlackWhite must hold six entries and coeffs three.
func NewYCbCrConverter(refBlackWhite, coeffs []types.Rational) (*YCbCrConverter, error) {
	if refBlackWhite == nil {
		refBlackWhite = DefaultReferenceBlackWhite
	}
	if coeffs == nil {
		coeffs = DefaultYCbCrCoefficients
	}
	if len(refBlackWhite) != 6 {
		return nil, fmt.Errorf("ReferenceBlackWhite has %d entries, want 6: %w", len(refBlackWhite), types.ErrInvalidLayout)
	}
	if len(coeffs) != 3 {
		return nil, fmt.Errorf("YCbCrCoefficients has %d entries, want 3: %w", len(coeffs), types.ErrInvalidLayout)
	}

	var c YCbCrConverter
	var err error
	if c.y, err = newCodingRange(refBlackWhite[0], refBlackWhite[1], lumaCodingRange); err != nil {
		return nil, fmt.Errorf("luma: %w", err)
	}
	if c.cb, err = newCodingRange(refBlackWhite[2], refBlackWhite[3], chromaCodingRange); err != nil {
		return nil, fmt.Errorf("cb: %w", err)
	}
	if c.cr, err = newCodingRange(refBlackWhite[4], refBlackWhite[5], chromaCodingRange); err != nil {
		return nil, fmt.Errorf("cr: %w", err)
	}

	lr, lg, lb := coeffs[0].Float(), coeffs[1].Float(), coeffs[2].Float()
	if lg == 0 {
		return nil, fmt.Errorf("zero green luma coefficient: %w", types.ErrInvalidLayout)
	}
	c.cr2r = 2 - 2*lr
	c.cb2b = 2 - 2*lb
	c.y2g = (1 - lb - lr) / lg
	c.cr2g = 2 * lr * (lr - 1) / lg
	c.cb2g = 2 * lb * (lb - 1) / lg
	return &c, nil
}

// Convert returns the 8-bit RGB triple for one Y, Cb, Cr code.
// Results are rounded and clamped to 0..255.
func (c *YCbCrConverter) Convert(y, cb, cr uint8) (r, g, b uint8) {
	yy := c.y.expand(y)
	ccb := c.cb.expand(cb)
	ccr := c.cr.expand(cr)

	r = clampByte(c.cr2r*ccr + yy)
	g = clampByte(c.y2g*yy + c.cr2g*ccr + c.cb2g*ccb)
	b = clampByte(c.cb2b*ccb + yy)
	return r, g, b
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
