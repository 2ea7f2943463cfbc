package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Source is anything the loader can turn into a decoded image.
//
// Three implementations are provided:
//   - Bytes: an in-memory encoded image
//   - Path: a file on disk
//   - Decoded: an image that has already been decoded
//
// The encoded format is inferred from the content by the registered
// decoders, not by this package.
type Source interface {
	decode() (image.Image, error)
	String() string
}

// Bytes is an encoded image held in memory.
type Bytes []byte

// Path is the location of an encoded image file.
type Path string

// Decoded wraps an image that needs no decoding.
type Decoded struct {
	image.Image
}

func (b Bytes) decode() (image.Image, error) {
	return imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
}

func (b Bytes) String() string {
	return fmt.Sprintf("<%d bytes>", len(b))
}

func (p Path) decode() (image.Image, error) {
	return imaging.Open(string(p), imaging.AutoOrientation(true))
}

func (p Path) String() string {
	return string(p)
}

func (d Decoded) decode() (image.Image, error) {
	if d.Image == nil {
		return nil, fmt.Errorf("nil image")
	}
	return d.Image, nil
}

func (d Decoded) String() string {
	return "<decoded image>"
}

// DecodeError reports that a source could not be read or decoded.
type DecodeError struct {
	// Source describes the input: a path, a byte count, or a decoded image.
	Source string

	// Err is the underlying I/O or codec error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads src into a format-erased image.
//
// # Errors
//
//   - Returns *DecodeError if a file cannot be opened
//   - Returns *DecodeError if the data is not a supported image format
func Decode(src Source) (image.Image, error) {
	if src == nil {
		return nil, &DecodeError{Source: "<nil>", Err: fmt.Errorf("no image source")}
	}
	img, err := src.decode()
	if err != nil {
		return nil, &DecodeError{Source: src.String(), Err: err}
	}
	return img, nil
}
