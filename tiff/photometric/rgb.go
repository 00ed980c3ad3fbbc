package photometric

import (
	"fmt"

	"github.com/joshuapare/tiffkit/internal/buf"
	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/pixel"
)

// rgbChunky decodes interleaved R,G,B[,A] samples.
type rgbChunky struct {
	widths    []int
	pixelSize int
	order     types.ByteOrder
	scaler    Scaler
	limits    types.Limits
}

func newRGBChunky(l Layout, widths []int, limits types.Limits) *rgbChunky {
	d := &rgbChunky{
		widths: widths,
		order:  l.ByteOrder,
		scaler: NewScaler(scalerBits(widths, 3), l.ExtraSamples),
		limits: limits,
	}
	for _, w := range widths {
		d.pixelSize += w
	}
	return d
}

func (d *rgbChunky) Name() string { return "rgb-chunky" }

func (d *rgbChunky) Decode(src Strip, dst pixel.Rows, r types.Region) error {
	if err := checkRegion(dst, r, d.limits); err != nil {
		return err
	}
	if _, err := buf.CheckRunBounds(len(src.Data), 0, r.Width*r.Height, d.pixelSize); err != nil {
		return fmt.Errorf("rgb strip for %dx%d: %w", r.Width, r.Height, err)
	}

	var s [4]uint64
	off := 0
	for y := r.Top; y < r.Bottom(); y++ {
		row, err := dst.Row(y, r.Left, r.Width)
		if err != nil {
			return err
		}
		for x := range row {
			for c, w := range d.widths {
				if s[c], off, err = buf.ReadSample(src.Data, off, w, d.order); err != nil {
					return err
				}
			}
			row[x] = d.scaler.Scale(s[0], s[1], s[2], s[3])
		}
	}
	return nil
}

// rgbPlanar decodes one plane per channel.
type rgbPlanar struct {
	widths []int
	order  types.ByteOrder
	scaler Scaler
	limits types.Limits
}

func newRGBPlanar(l Layout, widths []int, limits types.Limits) *rgbPlanar {
	return &rgbPlanar{
		widths: widths,
		order:  l.ByteOrder,
		scaler: NewScaler(scalerBits(widths, 3), l.ExtraSamples),
		limits: limits,
	}
}

func (d *rgbPlanar) Name() string { return "rgb-planar" }

func (d *rgbPlanar) Decode(src Strip, dst pixel.Rows, r types.Region) error {
	if len(src.Planes) != len(d.widths) {
		return fmt.Errorf("planar RGB: got %d planes, want %d: %w", len(src.Planes), len(d.widths), types.ErrInvalidLayout)
	}
	if err := checkRegion(dst, r, d.limits); err != nil {
		return err
	}
	readers := make([]*buf.SampleReader, len(d.widths))
	for c, w := range d.widths {
		if _, err := buf.CheckRunBounds(len(src.Planes[c]), 0, r.Width*r.Height, w); err != nil {
			return fmt.Errorf("plane %d for %dx%d: %w", c, r.Width, r.Height, err)
		}
		sr, err := buf.NewSampleReader(src.Planes[c], w, d.order)
		if err != nil {
			return err
		}
		readers[c] = sr
	}

	var s [4]uint64
	for y := r.Top; y < r.Bottom(); y++ {
		row, err := dst.Row(y, r.Left, r.Width)
		if err != nil {
			return err
		}
		for x := range row {
			for c, sr := range readers {
				if s[c], err = sr.Next(); err != nil {
					return err
				}
			}
			row[x] = d.scaler.Scale(s[0], s[1], s[2], s[3])
		}
	}
	return nil
}
