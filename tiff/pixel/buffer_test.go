package pixel

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuffer(t *testing.T, w, h int) *Buffer {
	t.Helper()
	b, err := NewBuffer(w, h)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestNewBuffer_DefaultPixels(t *testing.T) {
	b := newTestBuffer(t, 3, 2)
	require.Len(t, b.Pix, 6)
	for i, p := range b.Pix {
		assert.Equal(t, RGBA{}, p, "pixel %d", i)
	}
	assert.True(t, b.Handle().IsValid())
}

func TestBuffer_RowWritesThrough(t *testing.T) {
	b := newTestBuffer(t, 4, 3)

	row, err := b.Row(1, 1, 2)
	require.NoError(t, err)
	require.Len(t, row, 2)
	row[0] = Opaque(1, 0, 0)
	row[1] = Opaque(0, 1, 0)

	want := make([]RGBA, 12)
	want[5] = Opaque(1, 0, 0)
	want[6] = Opaque(0, 1, 0)
	if diff := cmp.Diff(want, b.Pix); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}

	// the returned slice is capped so appends cannot spill into the next pixel
	assert.Equal(t, 2, cap(row))
}

func TestBuffer_RowBounds(t *testing.T) {
	b := newTestBuffer(t, 4, 3)

	tests := []struct {
		name           string
		y, left, width int
	}{
		{"row below", 3, 0, 1},
		{"negative row", -1, 0, 1},
		{"past right edge", 0, 3, 2},
		{"negative left", 0, -1, 2},
		{"negative width", 0, 0, -1},
		{"left wraps past right edge", 0, math.MaxInt, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Row(tt.y, tt.left, tt.width)
			require.ErrorIs(t, err, types.ErrBufferBounds)
		})
	}
}

func TestBuffer_CloseReleasesNativeMemory(t *testing.T) {
	base := memory.Outstanding()

	b, err := NewBuffer(8, 8)
	require.NoError(t, err)
	assert.Equal(t, base+1, memory.Outstanding())

	h := b.Handle()
	require.NoError(t, b.Close())
	assert.False(t, h.IsValid())
	assert.Equal(t, base, memory.Outstanding())

	_, err = b.Row(0, 0, 1)
	require.ErrorIs(t, err, types.ErrReleased)
	require.NoError(t, b.Close(), "second Close is a no-op")
}

func TestNewBuffer_Invalid(t *testing.T) {
	_, err := NewBuffer(-1, 4)
	require.ErrorIs(t, err, types.ErrBufferBounds)

	prev := memory.SetLimit(64)
	defer memory.SetLimit(prev)
	_, err = NewBuffer(100, 100)
	require.ErrorIs(t, err, types.ErrAllocationFailure)
}

func TestBuffer_Image(t *testing.T) {
	b := newTestBuffer(t, 2, 1)
	b.Pix[0] = FromRGBA32(255, 128, 0, 255)
	b.Pix[1] = RGBA{R: 1, G: 1, B: 1, A: 0.5}

	assert.Equal(t, color.NRGBA64Model, b.ColorModel())
	assert.Equal(t, 2, b.Bounds().Dx())
	assert.Equal(t, color.NRGBA64{R: 0xffff, G: 0x8080, B: 0, A: 0xffff}, b.At(0, 0))
	assert.Equal(t, color.NRGBA64{}, b.At(5, 5))

	img := b.ToNRGBA()
	assert.Equal(t, []uint8{255, 128, 0, 255, 255, 255, 255, 128}, img.Pix)
}

func TestRGBA_Conversions(t *testing.T) {
	p := FromRGBA32(10, 20, 30, 40)
	r, g, b, a := p.RGBA32()
	assert.Equal(t, [4]uint8{10, 20, 30, 40}, [4]uint8{r, g, b, a})

	half := RGBA{R: 1, G: 0.5, B: 0, A: 0.5}.Premultiplied()
	assert.InDelta(t, 0.5, half.R, 1e-6)
	assert.InDelta(t, 0.25, half.G, 1e-6)
	assert.InDelta(t, 0.5, half.A, 1e-6)

	over := RGBA{R: 1.5, G: -0.2, B: 0.5, A: 1}
	r, g, b, a = over.RGBA32()
	assert.Equal(t, [4]uint8{255, 0, 128, 255}, [4]uint8{r, g, b, a})
}
