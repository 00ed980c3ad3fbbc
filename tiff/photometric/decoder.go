package photometric

import (
	"fmt"

	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/pixel"
)

// Strip is the decompressed sample data of one strip. Chunky layouts use
// Data; planar layouts use Planes in channel order. The decoder only reads
// from a Strip and does not retain it.
type Strip struct {
	Data   []byte
	Planes [][]byte
}

// Decoder fills a destination region from strip samples.
type Decoder interface {
	// Decode writes every pixel of r exactly once, row by row, reading
	// samples in strip order. On error the contents of r are unspecified.
	Decode(src Strip, dst pixel.Rows, r types.Region) error

	// Name identifies the variant, e.g. "rgb-chunky".
	Name() string
}

// New returns the decoder for layout. A nil opts uses default limits.
func New(layout Layout, opts *Options) (Decoder, error) {
	limits := opts.limits()
	widths, err := layout.sampleBytes(limits)
	if err != nil {
		return nil, err
	}
	hSub, vSub := layout.subsampling()
	if hSub < 1 || vSub < 1 {
		return nil, fmt.Errorf("sub-sampling %dx%d: %w", hSub, vSub, types.ErrInvalidLayout)
	}
	if (hSub != 1 || vSub != 1) && layout.Photometric != types.PhotometricYCbCr {
		return nil, fmt.Errorf("sub-sampling %dx%d with %s: %w", hSub, vSub, layout.Photometric, types.ErrInvalidLayout)
	}

	switch layout.Photometric {
	case types.PhotometricRGB:
		if n := len(widths); n != 3 && n != 4 {
			return nil, fmt.Errorf("RGB with %d channels: %w", n, types.ErrUnsupported)
		}
		if layout.planar() {
			return newRGBPlanar(layout, widths, limits), nil
		}
		return newRGBChunky(layout, widths, limits), nil

	case types.PhotometricBlackIsZero, types.PhotometricWhiteIsZero:
		if n := len(widths); n != 1 && n != 2 {
			return nil, fmt.Errorf("gray with %d channels: %w", n, types.ErrUnsupported)
		}
		if layout.planar() {
			return nil, fmt.Errorf("planar gray: %w", types.ErrUnsupported)
		}
		return newGray(layout, widths, limits), nil

	case types.PhotometricYCbCr:
		if !layout.planar() {
			return nil, fmt.Errorf("chunky YCbCr: %w", types.ErrUnsupported)
		}
		if len(widths) != 3 {
			return nil, fmt.Errorf("YCbCr with %d channels: %w", len(widths), types.ErrUnsupported)
		}
		for i, w := range widths {
			if w != 1 {
				return nil, fmt.Errorf("YCbCr channel %d with %d bits: %w", i, w*8, types.ErrUnsupported)
			}
		}
		conv, err := NewYCbCrConverter(layout.ReferenceBlackWhite, layout.YCbCrCoefficients)
		if err != nil {
			return nil, err
		}
		return &ycbcrPlanar{conv: conv, hSub: hSub, vSub: vSub, limits: limits}, nil

	default:
		return nil, fmt.Errorf("photometric %s: %w", layout.Photometric, types.ErrUnsupported)
	}
}

// checkRegion validates r against the destination and the limits.
func checkRegion(dst pixel.Rows, r types.Region, limits types.Limits) error {
	w, h := dst.Size()
	if err := r.Within(w, h); err != nil {
		return err
	}
	return limits.CheckRegion(r)
}

// scalerBits spreads channel byte widths into Scaler bit widths. Color
// channels come first; a trailing extra channel becomes alpha.
func scalerBits(widths []int, colors int) [4]int {
	var bits [4]int
	for i := 0; i < colors; i++ {
		bits[i] = widths[i] * 8
	}
	if len(widths) > colors {
		bits[3] = widths[colors] * 8
	}
	return bits
}
