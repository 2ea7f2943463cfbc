package imaging

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/texture-prep-mcp/internal/pixel"
)

// DefaultMatte is the background transparent pixels are flattened onto
// when the output format has no alpha channel.
const DefaultMatte = "#ffffff"

// SaveOptions controls how a buffer is encoded to disk.
type SaveOptions struct {
	// Matte is a "#rrggbb" color used behind transparent pixels for
	// formats without alpha (JPEG, BMP). Empty means DefaultMatte.
	Matte string

	// Quality is the JPEG quality (1-100). Zero means 95.
	Quality int
}

// Save encodes buf to path. The encoder is chosen from the file extension:
// ".png", ".jpg"/".jpeg" or ".bmp". Missing parent directories are created.
//
// # Errors
//
//   - Returns error if the extension is not supported
//   - Returns error if the matte color cannot be parsed
//   - Returns error if the file cannot be written
func Save[P pixel.Pixel[P]](buf *pixel.Buffer[P], path string, opts SaveOptions) error {
	img := buf.Image()

	var encoder imgio.Encoder
	var out image.Image = img
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		encoder = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		q := opts.Quality
		if q <= 0 {
			q = 95
		}
		encoder = imgio.JPEGEncoder(q)
	case ".bmp":
		encoder = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}

	var zero P
	if _, hasAlpha := zero.Alpha(); hasAlpha && ext != ".png" {
		flat, err := flatten(img, opts.Matte)
		if err != nil {
			return err
		}
		out = flat
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imgio.Save(path, out, encoder); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// flatten composites img over an opaque matte color.
func flatten(img *image.NRGBA, matte string) (*image.NRGBA, error) {
	if matte == "" {
		matte = DefaultMatte
	}
	c, err := colorful.Hex(matte)
	if err != nil {
		return nil, fmt.Errorf("invalid matte color %q: %w", matte, err)
	}
	r, g, b := c.RGB255()

	bg := imaging.New(img.Rect.Dx(), img.Rect.Dy(), color.NRGBA{R: r, G: g, B: b, A: 0xff})
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0), nil
}
