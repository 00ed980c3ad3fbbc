package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"golang.org/x/image/tiff"

	"github.com/joshuapare/tiffkit/cmd/tiffdec/logger"
	"github.com/joshuapare/tiffkit/internal/mmfile"
	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/memory"
	"github.com/joshuapare/tiffkit/tiff/photometric"
	"github.com/joshuapare/tiffkit/tiff/pixel"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var (
	decodeLayoutPath   string
	decodePhotometric  string
	decodeWidth        int
	decodeHeight       int
	decodeRowsPerStrip int
	decodeOutput       string
	decodeLimits       string
)

func init() {
	cmd := newDecodeCmd()
	cmd.Flags().StringVar(&decodeLayoutPath, "layout", "", "JSON layout file (see 'tiffdec layout')")
	cmd.Flags().StringVar(&decodePhotometric, "photometric", "rgb", "Default layout to use when --layout is not given")
	cmd.Flags().IntVar(&decodeWidth, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&decodeHeight, "height", 0, "Image height in pixels")
	cmd.Flags().IntVar(&decodeRowsPerStrip, "rows-per-strip", 0, "Rows per strip (default: height)")
	cmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Write the image to a .tif, .tiff or .png file")
	cmd.Flags().StringVar(&decodeLimits, "limits", "default", "Decode limits: default, relaxed or strict")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	rootCmd.AddCommand(cmd)
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <strip>...",
		Short: "Decode decompressed strip samples into an image",
		Long: `The decode command reconstructs pixels from decompressed TIFF strips.

Chunky layouts take one file per strip. Planar layouts take one file per
plane, grouped by strip (Y Cb Cr Y Cb Cr ...). Files starting with the zstd
magic are decompressed first.

Example:
  tiffdec decode --width 64 --height 32 -o out.png strip0.bin
  tiffdec decode --layout ycbcr.json --width 64 --height 32 y.bin cb.bin cr.bin
  tiffdec decode --width 64 --height 32 --rows-per-strip 16 s0.bin s1.bin --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args)
		},
	}
	return cmd
}

// decodeSummary is the --json output of decode.
type decodeSummary struct {
	Decoder     string  `json:"decoder"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Strips      int     `json:"strips"`
	Output      string  `json:"output,omitempty"`
	ElapsedMS   float64 `json:"elapsed_ms"`
	Outstanding int64   `json:"outstanding_allocations"`
}

func runDecode(args []string) error {
	start := time.Now()

	layout, err := resolveLayout()
	if err != nil {
		return err
	}
	limits, err := parseLimits(decodeLimits)
	if err != nil {
		return err
	}
	dec, err := photometric.New(layout, &photometric.Options{Limits: &limits})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	logger.Debug("decoder ready", "decoder", dec.Name(), "photometric", layout.Photometric.String(),
		"bits", layout.BitsPerSample, "order", layout.ByteOrder.String())

	if decodeWidth <= 0 || decodeHeight <= 0 {
		return fmt.Errorf("image size %dx%d: %w", decodeWidth, decodeHeight, types.ErrBufferBounds)
	}

	rows := decodeRowsPerStrip
	if rows <= 0 || rows > decodeHeight {
		rows = decodeHeight
	}

	planes := 1
	if layout.Planar == types.PlanarSeparate {
		planes = layout.Channels()
	}
	strips := (decodeHeight + rows - 1) / rows
	if len(args) != strips*planes {
		return fmt.Errorf("expected %d strip files for %d strips of %d planes, got %d",
			strips*planes, strips, planes, len(args))
	}

	inputs, closeInputs, err := loadStrips(args)
	if err != nil {
		return err
	}
	defer closeInputs()

	jobs := make([]photometric.Job, strips)
	for i := range jobs {
		top := i * rows
		jobs[i].Region = types.Region{Left: 0, Top: top, Width: decodeWidth, Height: min(rows, decodeHeight-top)}
		if planes == 1 {
			jobs[i].Strip.Data = inputs[i]
		} else {
			jobs[i].Strip.Planes = inputs[i*planes : (i+1)*planes]
		}
	}

	img, err := pixel.NewBuffer(decodeWidth, decodeHeight)
	if err != nil {
		return fmt.Errorf("failed to allocate image: %w", err)
	}
	defer img.Close()

	if err := photometric.DecodeStrips(dec, jobs, img); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	logger.Debug("decoded", "strips", strips, "elapsed", time.Since(start))

	if decodeOutput != "" {
		if err := writeImage(decodeOutput, img); err != nil {
			return err
		}
		logger.Info("wrote image", "path", decodeOutput)
	}

	summary := decodeSummary{
		Decoder:   dec.Name(),
		Width:     decodeWidth,
		Height:    decodeHeight,
		Strips:    strips,
		Output:    decodeOutput,
		ElapsedMS: float64(time.Since(start).Microseconds()) / 1000,
	}
	if err := img.Close(); err != nil {
		return err
	}
	summary.Outstanding = memory.Outstanding()

	if jsonOut {
		return printJSON(summary)
	}
	printInfo("Decoded %dx%d with %s (%d strips)\n", summary.Width, summary.Height, summary.Decoder, summary.Strips)
	if summary.Output != "" {
		printInfo("  Output: %s\n", summary.Output)
	}
	printVerbose("  Elapsed: %.3f ms\n", summary.ElapsedMS)
	return nil
}

func resolveLayout() (photometric.Layout, error) {
	var lf layoutFile
	var err error
	if decodeLayoutPath != "" {
		lf, err = loadLayoutFile(decodeLayoutPath)
	} else {
		lf, err = defaultLayoutFile(decodePhotometric)
	}
	if err != nil {
		return photometric.Layout{}, err
	}
	return lf.toLayout()
}

func parseLimits(name string) (types.Limits, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return types.DefaultLimits(), nil
	case "relaxed":
		return types.RelaxedLimits(), nil
	case "strict":
		return types.StrictLimits(), nil
	default:
		return types.Limits{}, fmt.Errorf("unknown limits %q", name)
	}
}

// loadStrips maps every path and decompresses zstd payloads. The returned
// func unmaps the files; slices in the result are invalid after it runs.
func loadStrips(paths []string) ([][]byte, func(), error) {
	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("unmap failed", "error", err)
			}
		}
	}

	var zd *zstd.Decoder
	defer func() {
		if zd != nil {
			zd.Close()
		}
	}()

	out := make([][]byte, len(paths))
	for i, path := range paths {
		data, done, err := mmfile.Map(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to map %s: %w", path, err)
		}
		closers = append(closers, done)

		if bytes.HasPrefix(data, zstdMagic) {
			if zd == nil {
				if zd, err = zstd.NewReader(nil); err != nil {
					closeAll()
					return nil, nil, err
				}
			}
			plain, err := zd.DecodeAll(data, nil)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to decompress %s: %w", path, err)
			}
			logger.Debug("decompressed strip", "path", path, "compressed", len(data), "size", len(plain))
			data = plain
		}
		out[i] = data
	}
	return out, closeAll, nil
}

func writeImage(path string, img *pixel.Buffer) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".tif" && ext != ".tiff" {
		return fmt.Errorf("unsupported output extension %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	rgba := img.ToNRGBA()
	if ext == ".png" {
		return png.Encode(f, rgba)
	}
	return tiff.Encode(f, rgba, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
