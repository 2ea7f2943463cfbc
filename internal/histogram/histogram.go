// Package histogram implements first-channel histogram matching.
//
// Matching remaps the intensity of every source pixel so that the source's
// cumulative distribution approximates the target's. Only channel 0 is
// considered, and matched pixels are rebuilt as flat grey, so this is tone
// alignment rather than full color transfer.
package histogram

import (
	"fmt"

	"github.com/ironsheep/texture-prep-mcp/internal/pixel"
)

// Bins is the number of intensity buckets.
const Bins = 256

// Histogram counts channel-0 intensities; index i holds the number of
// pixels whose first channel equals i.
type Histogram [Bins]uint32

// CDF is a cumulative distribution normalized so the last bucket is 1.
type CDF [Bins]float32

// Of builds the channel-0 histogram of buf.
func Of[P pixel.Pixel[P]](buf *pixel.Buffer[P]) Histogram {
	var h Histogram
	for _, p := range buf.Pix {
		h[p.First()]++
	}
	return h
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += uint64(c)
	}
	return n
}

// Mean returns the average intensity, or 0 for an empty histogram.
func (h *Histogram) Mean() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	var sum uint64
	for i, c := range h {
		sum += uint64(i) * uint64(c)
	}
	return float64(sum) / float64(total)
}

// CDF accumulates the histogram and divides by the total count. An empty
// histogram has no distribution; its CDF is all NaN.
func (h *Histogram) CDF() CDF {
	var cdf CDF
	cdf[0] = float32(h[0])
	for i := 1; i < Bins; i++ {
		cdf[i] = cdf[i-1] + float32(h[i])
	}

	total := cdf[Bins-1]
	for i := range cdf {
		cdf[i] /= total
	}
	return cdf
}

// lookup returns the intensity in target whose cumulative mass first
// exceeds mass, minus one. When no bucket exceeds it, fallback is
// returned. A match at bucket 0 saturates at 0.
func (c *CDF) lookup(mass float32, fallback uint8) uint8 {
	for i, v := range c {
		if v > mass {
			if i == 0 {
				return 0
			}
			return uint8(i - 1)
		}
	}
	return fallback
}

// Match remaps source in place so that its channel-0 distribution
// approximates target's. Every source pixel is replaced with a flat grey,
// fully opaque pixel of the matched intensity.
//
// Both buffers must contain at least one pixel; Match panics otherwise.
func Match[P pixel.Pixel[P]](source, target *pixel.Buffer[P]) {
	if len(source.Pix) == 0 || len(target.Pix) == 0 {
		panic(fmt.Sprintf("histogram: match requires non-empty buffers (source %dx%d, target %dx%d)",
			source.Width, source.Height, target.Width, target.Height))
	}

	sh, th := Of(source), Of(target)
	sourceCDF, targetCDF := sh.CDF(), th.CDF()

	// The mapping depends only on the source intensity.
	var lut [Bins]uint8
	for v := range lut {
		lut[v] = targetCDF.lookup(sourceCDF[v], uint8(v))
	}

	var zero P
	for i, p := range source.Pix {
		source.Pix[i] = zero.Grey(lut[p.First()])
	}
}
