// Package photometric reconstructs canonical pixels from decompressed TIFF
// strip samples.
//
// # Overview
//
// The container layer locates strips, reads the format tags and decompresses
// the strip bytes. It then hands three things to a Decoder: the strip samples
// (one interleaved stream or one plane per channel), a Layout describing the
// samples, and the Region of the destination buffer they cover.
//
//	dec, err := photometric.New(layout, nil)
//	if err != nil {
//	    return err
//	}
//	dst, err := pixel.NewBuffer(width, height)
//	if err != nil {
//	    return err
//	}
//	defer dst.Close()
//
//	err = dec.Decode(photometric.Strip{Data: strip}, dst, types.Region{
//	    Left: 0, Top: row, Width: width, Height: rowsPerStrip,
//	})
//
// # Variants
//
// New dispatches on the photometric interpretation and planar configuration:
//
//   - RGB, chunky: packed R,G,B[,A] samples of 8/16/24/32 bits
//   - RGB, planar: one plane per channel
//   - YCbCr, planar: 8-bit Y, Cb, Cr planes with optional chroma sub-sampling
//   - BlackIsZero / WhiteIsZero, chunky: gray with optional alpha
//
// Every decoder validates the region against the destination and the strip
// length against the region before writing the first pixel, so a short strip
// fails with types.ErrBufferBounds rather than being zero-filled.
//
// # Building Blocks
//
// The variants are assembled from exported pieces that are usable on their
// own: Scaler (integer samples to 0..1 with alpha handling), YCbCrConverter
// (luma/chroma to RGB), and ExpandChroma (in-place chroma up-sampling).
//
// # Thread Safety
//
// Decoders hold no mutable state. One decoder may serve concurrent Decode
// calls as long as their destination regions do not overlap; DecodeStrips
// does this fan-out and rejects overlapping regions.
package photometric
