package pixel

import (
	"image"

	"github.com/disintegration/imaging"
)

// Buffer is a row-major grid of pixels in a single format.
type Buffer[P Pixel[P]] struct {
	Width  int
	Height int
	Pix    []P
}

// NewBuffer allocates a zeroed width x height buffer.
func NewBuffer[P Pixel[P]](width, height int) *Buffer[P] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer[P]{
		Width:  width,
		Height: height,
		Pix:    make([]P, width*height),
	}
}

// FromImage converts a decoded image of any color model into a buffer of
// format P. The source is read as non-premultiplied 8-bit RGBA first.
func FromImage[P Pixel[P]](img image.Image) *Buffer[P] {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	buf := NewBuffer[P](w, h)

	var zero P
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := buf.Pix[y*w : (y+1)*w]
		for x := range out {
			s := row[x*4 : x*4+4 : x*4+4]
			out[x] = zero.fromNRGBA(s[0], s[1], s[2], s[3])
		}
	}
	return buf
}

// Image converts the buffer back into a format-erased image. Formats
// without alpha are written fully opaque; luma formats are expanded to
// equal RGB channels.
func (b *Buffer[P]) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+b.Width*4]
		for x, p := range b.Pix[y*b.Width : (y+1)*b.Width] {
			p.toNRGBA(row[x*4 : x*4+4])
		}
	}
	return dst
}

// Bounds returns the buffer's rectangle anchored at the origin.
func (b *Buffer[P]) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Empty reports whether the buffer has no pixels.
func (b *Buffer[P]) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// At returns the pixel at (x, y). It panics if the coordinates are out of
// range.
func (b *Buffer[P]) At(x, y int) P {
	return b.Pix[y*b.Width+x]
}

// Set stores p at (x, y). It panics if the coordinates are out of range.
func (b *Buffer[P]) Set(x, y int, p P) {
	b.Pix[y*b.Width+x] = p
}

// Clone returns a deep copy of the buffer.
func (b *Buffer[P]) Clone() *Buffer[P] {
	pix := make([]P, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer[P]{Width: b.Width, Height: b.Height, Pix: pix}
}

// Equal reports whether both buffers have the same dimensions and pixels.
func (b *Buffer[P]) Equal(o *Buffer[P]) bool {
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// WritePremultipliedColors writes the alpha-weighted colors of every pixel
// into one flat slice of Width*Height*ColorLen bytes.
func (b *Buffer[P]) WritePremultipliedColors() []uint8 {
	var zero P
	n := zero.ColorLen()
	out := make([]uint8, len(b.Pix)*n)
	for i, p := range b.Pix {
		p.WritePremultiplied(out[i*n : i*n+n])
	}
	return out
}
