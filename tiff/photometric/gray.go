package photometric

import (
	"fmt"

	"github.com/joshuapare/tiffkit/internal/buf"
	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/pixel"
)

// gray decodes BlackIsZero and WhiteIsZero samples with optional alpha.
type gray struct {
	widths      []int
	pixelSize   int
	order       types.ByteOrder
	whiteIsZero bool
	scaler      Scaler
	limits      types.Limits
}

func newGray(l Layout, widths []int, limits types.Limits) *gray {
	d := &gray{
		widths:      widths,
		order:       l.ByteOrder,
		whiteIsZero: l.Photometric == types.PhotometricWhiteIsZero,
		scaler:      NewScaler(scalerBits(widths, 1), l.ExtraSamples),
		limits:      limits,
	}
	for _, w := range widths {
		d.pixelSize += w
	}
	return d
}

func (d *gray) Name() string {
	if d.whiteIsZero {
		return "white-is-zero"
	}
	return "black-is-zero"
}

func (d *gray) Decode(src Strip, dst pixel.Rows, r types.Region) error {
	if err := checkRegion(dst, r, d.limits); err != nil {
		return err
	}
	if _, err := buf.CheckRunBounds(len(src.Data), 0, r.Width*r.Height, d.pixelSize); err != nil {
		return fmt.Errorf("gray strip for %dx%d: %w", r.Width, r.Height, err)
	}

	var v, a uint64
	off := 0
	for y := r.Top; y < r.Bottom(); y++ {
		row, err := dst.Row(y, r.Left, r.Width)
		if err != nil {
			return err
		}
		for x := range row {
			if v, off, err = buf.ReadSample(src.Data, off, d.widths[0], d.order); err != nil {
				return err
			}
			if len(d.widths) > 1 {
				if a, off, err = buf.ReadSample(src.Data, off, d.widths[1], d.order); err != nil {
					return err
				}
			}
			row[x] = d.scaler.Gray(v, a, d.whiteIsZero)
		}
	}
	return nil
}
