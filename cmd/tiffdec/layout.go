package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/photometric"
	"github.com/spf13/cobra"
)

// layoutFile is the JSON form of a sample layout. Field values mirror the
// TIFF tags a container parser would hand over.
type layoutFile struct {
	Photometric         string      `json:"photometric"`
	Planar              bool        `json:"planar"`
	BitsPerSample       []int       `json:"bits_per_sample"`
	ByteOrder           string      `json:"byte_order"`
	Alpha               string      `json:"alpha,omitempty"`
	Subsampling         [2]int      `json:"subsampling,omitempty"`
	ReferenceBlackWhite [][2]uint32 `json:"reference_black_white,omitempty"`
	Coefficients        [][2]uint32 `json:"coefficients,omitempty"`
}

var photometricNames = map[string]types.Photometric{
	"rgb":           types.PhotometricRGB,
	"ycbcr":         types.PhotometricYCbCr,
	"black-is-zero": types.PhotometricBlackIsZero,
	"white-is-zero": types.PhotometricWhiteIsZero,
}

var alphaNames = map[string]types.ExtraSamples{
	"":             types.ExtraSamplesUnspecified,
	"unspecified":  types.ExtraSamplesUnspecified,
	"associated":   types.ExtraSamplesAssociated,
	"unassociated": types.ExtraSamplesUnassociated,
}

// defaultLayoutFile returns a typical layout for a photometric name.
func defaultLayoutFile(name string) (layoutFile, error) {
	switch strings.ToLower(name) {
	case "rgb":
		return layoutFile{Photometric: "rgb", BitsPerSample: []int{8, 8, 8}, ByteOrder: "be"}, nil
	case "rgba":
		return layoutFile{Photometric: "rgb", BitsPerSample: []int{8, 8, 8, 8}, ByteOrder: "be", Alpha: "unassociated"}, nil
	case "ycbcr":
		return layoutFile{
			Photometric:   "ycbcr",
			Planar:        true,
			BitsPerSample: []int{8, 8, 8},
			ByteOrder:     "be",
			Subsampling:   [2]int{2, 2},
			ReferenceBlackWhite: [][2]uint32{
				{0, 1}, {255, 1}, {128, 1}, {255, 1}, {128, 1}, {255, 1},
			},
			Coefficients: [][2]uint32{{299, 1000}, {587, 1000}, {114, 1000}},
		}, nil
	case "gray", "black-is-zero":
		return layoutFile{Photometric: "black-is-zero", BitsPerSample: []int{8}, ByteOrder: "be"}, nil
	case "white-is-zero":
		return layoutFile{Photometric: "white-is-zero", BitsPerSample: []int{8}, ByteOrder: "be"}, nil
	default:
		return layoutFile{}, fmt.Errorf("unknown photometric %q", name)
	}
}

// loadLayoutFile reads a JSON layout from path.
func loadLayoutFile(path string) (layoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layoutFile{}, err
	}
	var lf layoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return layoutFile{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return lf, nil
}

// toLayout converts the JSON form into a decoder layout.
func (lf layoutFile) toLayout() (photometric.Layout, error) {
	var l photometric.Layout

	p, ok := photometricNames[strings.ToLower(lf.Photometric)]
	if !ok {
		return l, fmt.Errorf("unknown photometric %q", lf.Photometric)
	}
	l.Photometric = p

	l.Planar = types.PlanarChunky
	if lf.Planar {
		l.Planar = types.PlanarSeparate
	}

	switch strings.ToLower(lf.ByteOrder) {
	case "", "be", "mm", "big":
		l.ByteOrder = types.BigEndian
	case "le", "ii", "little":
		l.ByteOrder = types.LittleEndian
	default:
		return l, fmt.Errorf("unknown byte order %q", lf.ByteOrder)
	}

	alpha, ok := alphaNames[strings.ToLower(lf.Alpha)]
	if !ok {
		return l, fmt.Errorf("unknown alpha kind %q", lf.Alpha)
	}
	l.ExtraSamples = alpha

	l.BitsPerSample = append([]int(nil), lf.BitsPerSample...)
	l.Subsampling = lf.Subsampling
	l.ReferenceBlackWhite = rationals(lf.ReferenceBlackWhite)
	l.YCbCrCoefficients = rationals(lf.Coefficients)
	return l, nil
}

func rationals(pairs [][2]uint32) []types.Rational {
	if pairs == nil {
		return nil
	}
	out := make([]types.Rational, len(pairs))
	for i, p := range pairs {
		out[i] = types.Rational{Num: p[0], Den: p[1]}
	}
	return out
}

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <rgb|rgba|ycbcr|gray|white-is-zero>",
		Short: "Print a default layout file",
		Long: `The layout command prints a JSON layout for the given photometric
interpretation. Edit it to match the strip and pass it to decode --layout.

Example:
  tiffdec layout ycbcr > ycbcr.json
  tiffdec decode --layout ycbcr.json --width 640 --height 480 y.bin cb.bin cr.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

func runLayout(args []string) error {
	lf, err := defaultLayoutFile(args[0])
	if err != nil {
		return err
	}
	return printJSON(lf)
}
