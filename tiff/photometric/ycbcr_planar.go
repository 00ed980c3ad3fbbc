package photometric

import (
	"fmt"

	"github.com/joshuapare/tiffkit/internal/buf"
	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/memory"
	"github.com/joshuapare/tiffkit/tiff/pixel"
)

// ycbcrPlanar decodes 8-bit Y, Cb, Cr planes. Rows of all three planes are
// padded to a multiple of the horizontal sub-sampling factor.
type ycbcrPlanar struct {
	conv       *YCbCrConverter
	hSub, vSub int
	limits     types.Limits
}

func (d *ycbcrPlanar) Name() string { return "ycbcr-planar" }

func (d *ycbcrPlanar) Decode(src Strip, dst pixel.Rows, r types.Region) error {
	if len(src.Planes) != 3 {
		return fmt.Errorf("planar YCbCr: got %d planes, want 3: %w", len(src.Planes), types.ErrInvalidLayout)
	}
	if err := checkRegion(dst, r, d.limits); err != nil {
		return err
	}

	stride, paddedH := paddedSize(r.Width, r.Height, d.hSub, d.vSub)
	need := (r.Height-1)*stride + r.Width
	if _, err := buf.CheckRunBounds(len(src.Planes[0]), 0, need, 1); err != nil {
		return fmt.Errorf("luma plane: %w", err)
	}

	cb, cr := src.Planes[1], src.Planes[2]
	if d.hSub != 1 || d.vSub != 1 {
		scratch, err := d.expandChroma(cb, cr, r.Width, r.Height, stride, paddedH)
		if err != nil {
			return err
		}
		defer scratch.Close()
		full := scratch.Bytes()
		cb, cr = full[:stride*paddedH], full[stride*paddedH:]
	} else {
		for i, p := range [][]byte{cb, cr} {
			if _, err := buf.CheckRunBounds(len(p), 0, need, 1); err != nil {
				return fmt.Errorf("chroma plane %d: %w", i+1, err)
			}
		}
	}

	yData := src.Planes[0]
	off := 0
	for y := r.Top; y < r.Bottom(); y++ {
		row, err := dst.Row(y, r.Left, r.Width)
		if err != nil {
			return err
		}
		for x := range row {
			red, green, blue := d.conv.Convert(yData[off], cb[off], cr[off])
			row[x] = pixel.FromRGBA32(red, green, blue, 0xff)
			off++
		}
		off += stride - r.Width
	}
	return nil
}

// expandChroma copies the block samples of both chroma planes into one native
// scratch allocation and up-samples them there. The strip planes stay
// untouched. The caller closes the returned Owner.
func (d *ycbcrPlanar) expandChroma(cb, cr []byte, width, height, stride, paddedH int) (*memory.Owner, error) {
	blocks := (stride / d.hSub) * (paddedH / d.vSub)
	for i, p := range [][]byte{cb, cr} {
		if _, err := buf.CheckRunBounds(len(p), 0, blocks, 1); err != nil {
			return nil, fmt.Errorf("chroma plane %d: %w", i+1, err)
		}
	}

	planeSize := stride * paddedH
	if err := d.limits.CheckScratch(2 * planeSize); err != nil {
		return nil, err
	}
	scratch, err := memory.Acquire(2 * planeSize)
	if err != nil {
		return nil, fmt.Errorf("chroma scratch: %w", err)
	}

	full := scratch.Bytes()
	fullCb, fullCr := full[:planeSize], full[planeSize:]
	copy(fullCb, cb[:blocks])
	copy(fullCr, cr[:blocks])
	if err := ExpandChroma(fullCb, width, height, d.hSub, d.vSub); err != nil {
		scratch.Close()
		return nil, err
	}
	if err := ExpandChroma(fullCr, width, height, d.hSub, d.vSub); err != nil {
		scratch.Close()
		return nil, err
	}
	return scratch, nil
}
