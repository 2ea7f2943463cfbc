// Package pyramid builds same-resolution Gaussian pyramids for coarse to
// fine synthesis.
//
// Every level has the dimensions of the original buffer. Coarser levels are
// produced by downsampling the original by a power of two and upsampling
// the result back, so they differ from the original only in spatial
// frequency content. Synthesis can then compare identically shaped
// neighborhoods across levels.
package pyramid

import (
	"math/bits"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/texture-prep-mcp/internal/pixel"
)

// Pyramid is an ordered set of levels, coarsest first. The last level is
// the untouched original.
type Pyramid[P pixel.Pixel[P]] struct {
	Levels []*pixel.Buffer[P]
}

// AutoLevels returns floor(log2(max(width, height))), and at least 1.
func AutoLevels(width, height int) int {
	m := max(width, height)
	if m < 2 {
		return 1
	}
	return bits.Len(uint(m)) - 1
}

// Build decomposes buf into a pyramid of the given number of levels. A
// levels value of zero or less selects AutoLevels.
//
// Level i (for i < levels-1) is buf downsampled by 2^(levels-1-i) with a
// Gaussian filter and upsampled back to full size. Factors past the point
// where both dimensions reach one pixel all give the same 1x1 downsample.
// buf itself becomes the final level and is owned by the pyramid
// afterwards.
func Build[P pixel.Pixel[P]](buf *pixel.Buffer[P], levels int) *Pyramid[P] {
	if levels <= 0 {
		levels = AutoLevels(buf.Width, buf.Height)
	}

	p := &Pyramid[P]{}
	if buf.Empty() {
		for i := 1; i < levels; i++ {
			p.Levels = append(p.Levels, buf.Clone())
		}
		p.Levels = append(p.Levels, buf)
		return p
	}

	src := buf.Image()
	w, h := buf.Width, buf.Height
	maxShift := bits.Len(uint(max(w, h)))
	for i := levels - 1; i >= 1; i-- {
		s := min(i, maxShift)
		// imaging treats a zero dimension as "keep aspect ratio".
		small := imaging.Resize(src, max(w>>s, 1), max(h>>s, 1), imaging.Gaussian)
		p.Levels = append(p.Levels, pixel.FromImage[P](imaging.Resize(small, w, h, imaging.Gaussian)))
	}
	p.Levels = append(p.Levels, buf)
	return p
}

// Len returns the number of levels.
func (p *Pyramid[P]) Len() int {
	return len(p.Levels)
}

// Level returns level i, where 0 is the coarsest.
func (p *Pyramid[P]) Level(i int) *pixel.Buffer[P] {
	return p.Levels[i]
}

// Bottom returns the full-resolution, unblurred original.
func (p *Pyramid[P]) Bottom() *pixel.Buffer[P] {
	return p.Levels[len(p.Levels)-1]
}
