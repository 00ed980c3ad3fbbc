package pixel

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"github.com/joshuapare/tiffkit/internal/buf"
	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/memory"
)

// Rows is the destination capability decoders write through: a mutable slice
// of canonical pixels for row y, columns [left, left+width).
type Rows interface {
	// Size returns the destination dimensions in pixels.
	Size() (width, height int)

	// Row returns the pixels of row y in [left, left+width). Out-of-range
	// requests fail with an error wrapping types.ErrBufferBounds.
	Row(y, left, width int) ([]RGBA, error)
}

// compile-time interface checks
var (
	_ Rows        = (*Buffer)(nil)
	_ image.Image = (*Buffer)(nil)
)

const pixelSize = int(unsafe.Sizeof(RGBA{}))

// Buffer is a width×height grid of canonical pixels stored in native memory
// obtained from the memory package. Close must be called to return it.
type Buffer struct {
	Pix    []RGBA
	Width  int
	Height int

	owner *memory.Owner
}

// NewBuffer allocates a zero-filled buffer. Every pixel starts as RGBA{}.
func NewBuffer(width, height int) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("pixel: buffer %dx%d: %w", width, height, types.ErrBufferBounds)
	}
	n, ok := buf.MulOverflowSafe(width, height)
	if !ok {
		return nil, fmt.Errorf("pixel: buffer %dx%d: %w", width, height, types.ErrAllocationFailure)
	}
	size, ok := buf.MulOverflowSafe(n, pixelSize)
	if !ok {
		return nil, fmt.Errorf("pixel: buffer %dx%d: %w", width, height, types.ErrAllocationFailure)
	}

	o, err := memory.Acquire(size)
	if err != nil {
		return nil, fmt.Errorf("pixel: buffer %dx%d: %w", width, height, err)
	}

	var pix []RGBA
	if n > 0 {
		raw := o.Bytes()
		pix = unsafe.Slice((*RGBA)(unsafe.Pointer(unsafe.SliceData(raw))), n)
	}
	return &Buffer{
		Pix:    pix,
		Width:  width,
		Height: height,
		owner:  o,
	}, nil
}

// Close releases the native memory. The buffer must not be used afterwards.
func (b *Buffer) Close() error {
	b.Pix = nil
	return b.owner.Close()
}

// Handle returns the native allocation backing the buffer.
func (b *Buffer) Handle() memory.Handle { return b.owner.Handle() }

// Size returns the buffer dimensions.
func (b *Buffer) Size() (int, int) { return b.Width, b.Height }

// Row returns the pixels of row y in [left, left+width).
func (b *Buffer) Row(y, left, width int) ([]RGBA, error) {
	if b.Pix == nil && b.Width*b.Height > 0 {
		return nil, fmt.Errorf("pixel: row %d of closed buffer: %w", y, types.ErrReleased)
	}
	if y < 0 || y >= b.Height || left < 0 || width < 0 || left > b.Width-width {
		return nil, fmt.Errorf("pixel: row %d [%d,%d) of %dx%d: %w",
			y, left, left+width, b.Width, b.Height, types.ErrBufferBounds)
	}
	start := y*b.Width + left
	return b.Pix[start : start+width : start+width], nil
}

// At returns the pixel at (x, y) as a straight 16-bit color.
// Out-of-range positions return transparent black.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height || b.Pix == nil {
		return color.NRGBA64{}
	}
	return b.Pix[y*b.Width+x].NRGBA64()
}

// ColorModel returns color.NRGBA64Model.
func (b *Buffer) ColorModel() color.Model { return color.NRGBA64Model }

// Bounds returns the buffer rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }

// ToNRGBA converts the buffer to an 8-bit Go image.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(b.Bounds())
	for y := range b.Height {
		for x := range b.Width {
			i := out.PixOffset(x, y)
			r, g, bl, a := b.Pix[y*b.Width+x].RGBA32()
			out.Pix[i+0] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = bl
			out.Pix[i+3] = a
		}
	}
	return out
}
