package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/texture-prep-mcp/internal/pixel"
)

// Size is a target width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// matches reports whether img already has the requested dimensions.
func (s Size) matches(r image.Rectangle) bool {
	return r.Dx() == s.Width && r.Dy() == s.Height
}

// Load decodes src and converts it into a buffer of format P.
//
// Parameters:
//   - src: Encoded bytes, a file path, or an already decoded image.
//   - size: Optional target dimensions. Nil converts the format only.
//
// When size is given and differs from the decoded dimensions, the converted
// buffer is resampled with a Catmull-Rom cubic filter to exactly that size.
// A size equal to the decoded dimensions skips resampling entirely, so the
// result is identical to a plain format conversion.
//
// # Errors
//
//   - Returns *DecodeError if the source cannot be read or decoded
func Load[P pixel.Pixel[P]](src Source, size *Size) (*pixel.Buffer[P], error) {
	img, err := Decode(src)
	if err != nil {
		return nil, err
	}

	buf := pixel.FromImage[P](img)
	if size == nil || size.matches(buf.Bounds()) {
		return buf, nil
	}

	return resize(buf, *size, imaging.CatmullRom), nil
}

// GuideMap derives a blurred greyscale guide from buf.
//
// The buffer is resized with a linear (triangle) filter when size is given
// and differs from its dimensions, blurred with a Gaussian of the given
// sigma, desaturated, and converted back to format P. A sigma of zero or
// less skips the blur. The input buffer is not modified.
func GuideMap[P pixel.Pixel[P]](buf *pixel.Buffer[P], size *Size, sigma float64) *pixel.Buffer[P] {
	var img image.Image = buf.Image()
	if size != nil && !size.matches(buf.Bounds()) {
		img = imaging.Resize(img, size.Width, size.Height, imaging.Linear)
	}

	blurred := imaging.Blur(img, sigma)
	return pixel.FromImage[P](imaging.Grayscale(blurred))
}

// Resize resamples buf to size with filter, returning a new buffer.
func Resize[P pixel.Pixel[P]](buf *pixel.Buffer[P], size Size, filter imaging.ResampleFilter) *pixel.Buffer[P] {
	if size.matches(buf.Bounds()) {
		return buf.Clone()
	}
	return resize(buf, size, filter)
}

func resize[P pixel.Pixel[P]](buf *pixel.Buffer[P], size Size, filter imaging.ResampleFilter) *pixel.Buffer[P] {
	w, h := max(size.Width, 1), max(size.Height, 1)
	return pixel.FromImage[P](imaging.Resize(buf.Image(), w, h, filter))
}
