package photometric

import (
	"testing"

	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bt601Reference is the head-room reference range used by video-derived
// YCbCr TIFFs: luma 16..235, chroma 16..240 around 128.
var bt601Reference = []types.Rational{
	{16, 1}, {235, 1}, {128, 1}, {240, 1}, {128, 1}, {240, 1},
}

func TestYCbCrConverter_Defaults(t *testing.T) {
	c, err := NewYCbCrConverter(nil, nil)
	require.NoError(t, err)

	for _, y := range []uint8{0, 1, 100, 200, 255} {
		r, g, b := c.Convert(y, 128, 128)
		assert.Equal(t, [3]uint8{y, y, y}, [3]uint8{r, g, b}, "neutral chroma keeps luma, y=%d", y)
	}
}

func TestYCbCrConverter_ReferenceWhite(t *testing.T) {
	c, err := NewYCbCrConverter(bt601Reference, nil)
	require.NoError(t, err)

	r, g, b := c.Convert(235, 128, 128)
	assert.InDelta(t, 255, r, 1)
	assert.InDelta(t, 255, g, 1)
	assert.InDelta(t, 255, b, 1)

	r, g, b = c.Convert(16, 128, 128)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestYCbCrConverter_Clamps(t *testing.T) {
	c, err := NewYCbCrConverter(nil, nil)
	require.NoError(t, err)

	// saturated chroma pushes channels out of range on both sides
	r, g, b := c.Convert(255, 255, 255)
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), b)
	assert.Less(t, g, uint8(255))

	r, _, b = c.Convert(0, 0, 0)
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(0), b)
}

func TestYCbCrConverter_PrimaryRed(t *testing.T) {
	c, err := NewYCbCrConverter(nil, nil)
	require.NoError(t, err)

	// BT.601 full-range red: Y=76, Cb=85, Cr=255
	r, g, b := c.Convert(76, 85, 255)
	assert.InDelta(t, 254, r, 2)
	assert.InDelta(t, 0, g, 2)
	assert.InDelta(t, 0, b, 2)
}

func TestYCbCrConverter_InvalidParameters(t *testing.T) {
	_, err := NewYCbCrConverter(bt601Reference[:4], nil)
	require.ErrorIs(t, err, types.ErrInvalidLayout)

	_, err = NewYCbCrConverter(nil, DefaultYCbCrCoefficients[:2])
	require.ErrorIs(t, err, types.ErrInvalidLayout)

	flat := []types.Rational{{0, 1}, {0, 1}, {128, 1}, {255, 1}, {128, 1}, {255, 1}}
	_, err = NewYCbCrConverter(flat, nil)
	require.ErrorIs(t, err, types.ErrInvalidLayout)

	_, err = NewYCbCrConverter(nil, []types.Rational{{299, 1000}, {0, 1}, {114, 1000}})
	require.ErrorIs(t, err, types.ErrInvalidLayout)
}
