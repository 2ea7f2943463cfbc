package pixel

import (
	"github.com/chewxy/math32"
)

// Pixel is the capability set every supported pixel format implements.
//
// The type set is closed: Rgb, Rgba, Luma and LumaA are the only formats.
// P refers to the implementing type itself so that constructors such as
// Grey can return the native format.
type Pixel[P any] interface {
	Rgb | Rgba | Luma | LumaA

	// Channels returns the number of stored channels, alpha included.
	Channels() int

	// ColorLen returns the number of non-alpha channels: 3 for color
	// formats, 1 for luma formats.
	ColorLen() int

	// Colors returns the non-alpha channel values in fixed order.
	Colors() []uint8

	// First returns channel 0 without allocating.
	First() uint8

	// Alpha returns the alpha value and true if the format carries one.
	Alpha() (uint8, bool)

	// Grey returns a fully opaque pixel with every color channel set to v.
	Grey(v uint8) P

	// WritePremultiplied writes ColorLen color values into dst, scaled by
	// the normalized alpha when the format has alpha.
	WritePremultiplied(dst []uint8)

	fromNRGBA(r, g, b, a uint8) P
	toNRGBA(dst []uint8)
}

// Normalize maps a byte onto (0, 1) using symmetric rounding.
func Normalize(b uint8) float32 {
	return (float32(b) + 0.5) / 256.0
}

// Denormalize maps a normalized value back onto a byte. Values outside
// [0, 1) are clamped.
func Denormalize(x float32) uint8 {
	v := math32.Floor(x * 256.0)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// premultiply weights color value c by alpha a.
func premultiply(c, a uint8) uint8 {
	return Denormalize(Normalize(a) * Normalize(c))
}

// luma converts 8-bit RGB to intensity with the same integer ITU-R 601
// weights as color.GrayModel. Equal inputs map to themselves.
func luma(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return uint8(y)
}
