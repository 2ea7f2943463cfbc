package server

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/texture-prep-mcp/internal/histogram"
	"github.com/ironsheep/texture-prep-mcp/internal/imaging"
	"github.com/ironsheep/texture-prep-mcp/internal/pixel"
	"github.com/ironsheep/texture-prep-mcp/internal/pyramid"
)

// Format names accepted by the "format" tool argument.
const (
	FormatRGB       = "rgb"
	FormatRGBA      = "rgba"
	FormatLuma      = "luma"
	FormatLumaAlpha = "luma_alpha"
)

// MaxPyramidLevels bounds the "levels" argument of texture_pyramid. Every
// level is a full-resolution image written to disk, and levels beyond the
// image's own AutoLevels repeat the coarsest 1x1 blur.
const MaxPyramidLevels = 24

// runner executes the preprocessing tools for one pixel format.
type runner interface {
	prepare(a prepareArgs) (*PrepareResult, error)
	guideMap(a guideMapArgs) (*PrepareResult, error)
	pyramid(a pyramidArgs) (*PyramidResult, error)
	matchHistogram(a matchArgs) (*MatchResult, error)
	histogram(a histogramArgs) (*HistogramResult, error)
}

// pipeline instantiates the generic pipeline for pixel format P.
type pipeline[P pixel.Pixel[P]] struct {
	name string
}

// runnerFor selects the pipeline instantiation once per request. An empty
// name selects rgba.
func runnerFor(format string) (runner, error) {
	switch strings.ToLower(format) {
	case FormatRGB:
		return pipeline[pixel.Rgb]{name: FormatRGB}, nil
	case FormatRGBA, "":
		return pipeline[pixel.Rgba]{name: FormatRGBA}, nil
	case FormatLuma:
		return pipeline[pixel.Luma]{name: FormatLuma}, nil
	case FormatLumaAlpha:
		return pipeline[pixel.LumaA]{name: FormatLumaAlpha}, nil
	default:
		return nil, fmt.Errorf("unknown pixel format: %s", format)
	}
}

// PrepareResult describes a buffer written to disk.
type PrepareResult struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PyramidResult lists the pyramid levels written to disk, coarsest first.
type PyramidResult struct {
	Path    string   `json:"path"`
	Format  string   `json:"format"`
	Levels  int      `json:"levels"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Outputs []string `json:"outputs"`
}

// MatchResult reports first-channel mean intensities around a match.
type MatchResult struct {
	Output      string  `json:"output"`
	Format      string  `json:"format"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	SourceMean  float64 `json:"source_mean"`
	TargetMean  float64 `json:"target_mean"`
	MatchedMean float64 `json:"matched_mean"`
}

// HistogramResult is the first-channel distribution of an image.
type HistogramResult struct {
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	Total     uint64    `json:"total"`
	Mean      float64   `json:"mean"`
	Histogram []uint32  `json:"histogram"`
	CDF       []float32 `json:"cdf"`
}

func (p pipeline[P]) load(path string, size *imaging.Size) (*pixel.Buffer[P], error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.Load[P](imaging.Path(path), size)
}

func (p pipeline[P]) prepare(a prepareArgs) (*PrepareResult, error) {
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	size, err := targetSize(a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	buf, err := p.load(a.Path, size)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(buf, a.Output, imaging.SaveOptions{Matte: a.Matte}); err != nil {
		return nil, err
	}

	return &PrepareResult{
		Path:   a.Path,
		Output: a.Output,
		Format: p.name,
		Width:  buf.Width,
		Height: buf.Height,
	}, nil
}

func (p pipeline[P]) guideMap(a guideMapArgs) (*PrepareResult, error) {
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	size, err := targetSize(a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	buf, err := p.load(a.Path, nil)
	if err != nil {
		return nil, err
	}
	guide := imaging.GuideMap(buf, size, a.BlurSigma)
	if err := imaging.Save(guide, a.Output, imaging.SaveOptions{}); err != nil {
		return nil, err
	}

	return &PrepareResult{
		Path:   a.Path,
		Output: a.Output,
		Format: p.name,
		Width:  guide.Width,
		Height: guide.Height,
	}, nil
}

func (p pipeline[P]) pyramid(a pyramidArgs) (*PyramidResult, error) {
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	if a.Levels < 0 || a.Levels > MaxPyramidLevels {
		return nil, invalidParams("levels must be between 0 and %d, got %d", MaxPyramidLevels, a.Levels)
	}
	size, err := targetSize(a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	buf, err := p.load(a.Path, size)
	if err != nil {
		return nil, err
	}
	w, h := buf.Width, buf.Height
	pyr := pyramid.Build(buf, a.Levels)

	outputs := make([]string, 0, pyr.Len())
	for i, level := range pyr.Levels {
		out := filepath.Join(a.OutputDir, fmt.Sprintf("level_%02d.png", i))
		if err := imaging.Save(level, out, imaging.SaveOptions{}); err != nil {
			return nil, fmt.Errorf("failed to save level %d: %w", i, err)
		}
		outputs = append(outputs, out)
	}

	return &PyramidResult{
		Path:    a.Path,
		Format:  p.name,
		Levels:  pyr.Len(),
		Width:   w,
		Height:  h,
		Outputs: outputs,
	}, nil
}

func (p pipeline[P]) matchHistogram(a matchArgs) (*MatchResult, error) {
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	source, err := p.load(a.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err := p.load(a.Target, nil)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if source.Empty() || target.Empty() {
		return nil, fmt.Errorf("histogram matching requires non-empty images")
	}

	sh, th := histogram.Of(source), histogram.Of(target)
	histogram.Match(source, target)
	mh := histogram.Of(source)

	if err := imaging.Save(source, a.Output, imaging.SaveOptions{}); err != nil {
		return nil, err
	}

	return &MatchResult{
		Output:      a.Output,
		Format:      p.name,
		Width:       source.Width,
		Height:      source.Height,
		SourceMean:  sh.Mean(),
		TargetMean:  th.Mean(),
		MatchedMean: mh.Mean(),
	}, nil
}

func (p pipeline[P]) histogram(a histogramArgs) (*HistogramResult, error) {
	buf, err := p.load(a.Path, nil)
	if err != nil {
		return nil, err
	}
	if buf.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	h := histogram.Of(buf)
	cdf := h.CDF()
	return &HistogramResult{
		Path:      a.Path,
		Format:    p.name,
		Total:     h.Total(),
		Mean:      h.Mean(),
		Histogram: h[:],
		CDF:       cdf[:],
	}, nil
}

// targetSize returns nil when neither dimension is set.
func targetSize(width, height int) (*imaging.Size, error) {
	if width == 0 && height == 0 {
		return nil, nil
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("width and height must both be positive, got %dx%d", width, height)
	}
	return &imaging.Size{Width: width, Height: height}, nil
}
