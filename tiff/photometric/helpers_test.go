package photometric

import (
	"testing"

	"github.com/joshuapare/tiffkit/internal/buf"
	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/pixel"
	"github.com/stretchr/testify/require"
)

// encode packs values as width-byte samples in the given order.
func encode(t *testing.T, order types.ByteOrder, width int, values ...uint64) []byte {
	t.Helper()
	out := make([]byte, len(values)*width)
	off := 0
	for _, v := range values {
		var err error
		off, err = buf.PutSample(out, off, width, order, v)
		require.NoError(t, err)
	}
	return out
}

// newTestBuffer returns a destination buffer released at test cleanup.
func newTestBuffer(t *testing.T, w, h int) *pixel.Buffer {
	t.Helper()
	b, err := pixel.NewBuffer(w, h)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// at returns the pixel at (x, y) of b.
func at(b *pixel.Buffer, x, y int) pixel.RGBA {
	return b.Pix[y*b.Width+x]
}

// requirePixel compares p with want within 8-bit rounding tolerance.
func requirePixel(t *testing.T, want, got pixel.RGBA, msgAndArgs ...any) {
	t.Helper()
	const eps = 0.5 / 255
	require.InDelta(t, want.R, got.R, eps, msgAndArgs...)
	require.InDelta(t, want.G, got.G, eps, msgAndArgs...)
	require.InDelta(t, want.B, got.B, eps, msgAndArgs...)
	require.InDelta(t, want.A, got.A, eps, msgAndArgs...)
}
