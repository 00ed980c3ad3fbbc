package main

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/joshuapare/tiffkit/pkg/types"
)

// rgbStrip is a 2x2 8-bit chunky RGB strip: red, green / blue, white.
var rgbStrip = []byte{
	0xff, 0x00, 0x00, 0x00, 0xff, 0x00,
	0x00, 0x00, 0xff, 0xff, 0xff, 0xff,
}

var rgbWant = [2][2]color.NRGBA{
	{{R: 0xff, A: 0xff}, {G: 0xff, A: 0xff}},
	{{B: 0xff, A: 0xff}, {R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var img image.Image
	if filepath.Ext(path) == ".png" {
		img, err = png.Decode(f)
	} else {
		img, err = tiff.Decode(f)
	}
	require.NoError(t, err)
	return img
}

func requireRGBImage(t *testing.T, img image.Image) {
	t.Helper()
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	for y := range 2 {
		for x := range 2 {
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			assert.Equal(t, rgbWant[y][x], got, "pixel (%d,%d)", x, y)
		}
	}
}

func TestDecode_WritesTIFF(t *testing.T) {
	resetFlags()
	strip := writeFixture(t, "strip0.bin", rgbStrip)
	out := filepath.Join(t.TempDir(), "out.tiff")
	decodeWidth, decodeHeight, decodeOutput = 2, 2, out

	output, err := captureOutput(t, func() error {
		return runDecode([]string{strip})
	})
	require.NoError(t, err, output)
	assertContains(t, output, []string{"Decoded 2x2", "rgb-chunky", out})

	requireRGBImage(t, decodeFile(t, out))
}

func TestDecode_ZstdStripToPNG(t *testing.T) {
	resetFlags()
	strip := zstdFixture(t, "strip0.zst", rgbStrip)
	out := filepath.Join(t.TempDir(), "out.png")
	decodeWidth, decodeHeight, decodeOutput = 2, 2, out

	_, err := captureOutput(t, func() error {
		return runDecode([]string{strip})
	})
	require.NoError(t, err)

	requireRGBImage(t, decodeFile(t, out))
}

func TestDecode_MultipleStripsJSON(t *testing.T) {
	resetFlags()
	s0 := writeFixture(t, "s0.bin", rgbStrip[:6])
	s1 := zstdFixture(t, "s1.zst", rgbStrip[6:])
	decodeWidth, decodeHeight, decodeRowsPerStrip = 2, 2, 1
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runDecode([]string{s0, s1})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var summary decodeSummary
	require.NoError(t, json.Unmarshal([]byte(output), &summary))
	assert.Equal(t, "rgb-chunky", summary.Decoder)
	assert.Equal(t, 2, summary.Strips)
	assert.Equal(t, 2, summary.Width)
	assert.Equal(t, 2, summary.Height)
	assert.Empty(t, summary.Output)
	assert.Zero(t, summary.Outstanding)
}

func TestDecode_PlanarYCbCrLayout(t *testing.T) {
	resetFlags()
	lf, err := defaultLayoutFile("ycbcr")
	require.NoError(t, err)
	data, err := json.Marshal(lf)
	require.NoError(t, err)

	decodeLayoutPath = writeFixture(t, "ycbcr.json", data)
	decodeWidth, decodeHeight = 2, 2
	decodeOutput = filepath.Join(t.TempDir(), "out.png")

	planes := []string{
		writeFixture(t, "y.bin", []byte{235, 235, 235, 235}),
		writeFixture(t, "cb.bin", []byte{128}),
		writeFixture(t, "cr.bin", []byte{128}),
	}
	output, err := captureOutput(t, func() error {
		return runDecode(planes)
	})
	require.NoError(t, err, output)
	assertContains(t, output, []string{"ycbcr-planar"})

	img := decodeFile(t, decodeOutput)
	want := color.NRGBA{R: 235, G: 235, B: 235, A: 0xff}
	for y := range 2 {
		for x := range 2 {
			assert.Equal(t, want, color.NRGBAModel.Convert(img.At(x, y)))
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) []string
		target error
	}{
		{
			name: "short strip",
			setup: func(t *testing.T) []string {
				return []string{writeFixture(t, "short.bin", rgbStrip[:7])}
			},
			target: types.ErrBufferBounds,
		},
		{
			name: "wrong strip count",
			setup: func(t *testing.T) []string {
				p := writeFixture(t, "s.bin", rgbStrip)
				return []string{p, p}
			},
		},
		{
			name: "missing file",
			setup: func(t *testing.T) []string {
				return []string{filepath.Join(t.TempDir(), "nope.bin")}
			},
		},
		{
			name: "unsupported photometric",
			setup: func(t *testing.T) []string {
				decodePhotometric = "cmyk"
				return []string{writeFixture(t, "s.bin", rgbStrip)}
			},
		},
		{
			name: "unknown limits",
			setup: func(t *testing.T) []string {
				decodeLimits = "loose"
				return []string{writeFixture(t, "s.bin", rgbStrip)}
			},
		},
		{
			name: "bad output extension",
			setup: func(t *testing.T) []string {
				decodeOutput = filepath.Join(t.TempDir(), "out.bmp")
				return []string{writeFixture(t, "s.bin", rgbStrip)}
			},
		},
		{
			name: "zero size",
			setup: func(t *testing.T) []string {
				decodeWidth = 0
				return []string{writeFixture(t, "s.bin", rgbStrip)}
			},
			target: types.ErrBufferBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			decodeWidth, decodeHeight = 2, 2
			args := tt.setup(t)

			_, err := captureOutput(t, func() error {
				return runDecode(args)
			})
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestParseLimits(t *testing.T) {
	for name, want := range map[string]types.Limits{
		"":        types.DefaultLimits(),
		"default": types.DefaultLimits(),
		"Relaxed": types.RelaxedLimits(),
		"strict":  types.StrictLimits(),
	} {
		got, err := parseLimits(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}
