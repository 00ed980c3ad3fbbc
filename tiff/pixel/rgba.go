// Package pixel defines the canonical decoded pixel and the destination
// buffers decoders write into.
package pixel

import "image/color"

// RGBA is the canonical decoded pixel: straight (non-premultiplied) color and
// alpha, each scaled to 0..1. The zero value is transparent black and is the
// default pixel of a fresh Buffer.
type RGBA struct {
	R, G, B, A float32
}

// Opaque returns an opaque pixel from scaled color components.
func Opaque(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// FromRGBA32 returns the canonical pixel for 8-bit straight components.
func FromRGBA32(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float32(r) / 0xff,
		G: float32(g) / 0xff,
		B: float32(b) / 0xff,
		A: float32(a) / 0xff,
	}
}

// RGBA32 rounds p to 8-bit straight components.
func (p RGBA) RGBA32() (r, g, b, a uint8) {
	return to8(p.R), to8(p.G), to8(p.B), to8(p.A)
}

// NRGBA64 rounds p to 16-bit straight components.
func (p RGBA) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{R: to16(p.R), G: to16(p.G), B: to16(p.B), A: to16(p.A)}
}

// Premultiplied returns p with color components multiplied by alpha.
func (p RGBA) Premultiplied() RGBA {
	return RGBA{R: p.R * p.A, G: p.G * p.A, B: p.B * p.A, A: p.A}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*0xff + 0.5)
}

func to16(v float32) uint16 {
	return uint16(clamp01(v)*0xffff + 0.5)
}
