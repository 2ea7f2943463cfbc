package pyramid

import (
	"testing"

	"github.com/ironsheep/texture-prep-mcp/internal/pixel"
)

func checker(w, h int) *pixel.Buffer[pixel.Rgba] {
	buf := pixel.NewBuffer[pixel.Rgba](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				buf.Set(x, y, pixel.Rgba{255, 255, 255, 255})
			} else {
				buf.Set(x, y, pixel.Rgba{0, 0, 0, 255})
			}
		}
	}
	return buf
}

// checkShape fails unless every level of p has the given dimensions.
func checkShape[P pixel.Pixel[P]](t *testing.T, p *Pyramid[P], w, h int) {
	t.Helper()
	for i, l := range p.Levels {
		if l.Width != w || l.Height != h || len(l.Pix) != w*h {
			t.Fatalf("level %d/%d: got %dx%d (%d pixels), want %dx%d",
				i, p.Len(), l.Width, l.Height, len(l.Pix), w, h)
		}
	}
}

func TestAutoLevels(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{256, 128, 8},
		{128, 256, 8},
		{255, 10, 7},
		{257, 1, 8},
		{2, 2, 1},
		{3, 1, 1},
		{1, 1, 1},
		{0, 0, 1},
		{1000, 700, 9},
	}
	for _, tt := range tests {
		if got := AutoLevels(tt.w, tt.h); got != tt.want {
			t.Errorf("AutoLevels(%d, %d): got %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestBuildShapeInvariant(t *testing.T) {
	sizes := [][2]int{{16, 16}, {17, 5}, {3, 40}, {1, 1}, {64, 2}}
	for _, s := range sizes {
		for levels := 1; levels <= 6; levels++ {
			p := Build(checker(s[0], s[1]), levels)
			if p.Len() != levels {
				t.Fatalf("%v: got %d levels, want %d", s, p.Len(), levels)
			}
			checkShape(t, p, s[0], s[1])
		}
	}
}

func TestBuildLargeLevels(t *testing.T) {
	tests := []struct {
		w, h   int
		levels int
	}{
		{4, 4, 65},
		{4, 4, 70},
		{3, 1, 100},
		{1, 1, 64},
	}
	for _, tt := range tests {
		p := Build(pixel.NewBuffer[pixel.Rgb](tt.w, tt.h), tt.levels)
		if p.Len() != tt.levels {
			t.Fatalf("%dx%d: got %d levels, want %d", tt.w, tt.h, p.Len(), tt.levels)
		}
		checkShape(t, p, tt.w, tt.h)
	}
}

func TestBuildCoarsestLevelsRepeat(t *testing.T) {
	// 4x4 reaches 1x1 after a shift of 2; every coarser factor is the same.
	p := Build(checker(4, 4), 8)
	for i := 1; i < p.Len()-3; i++ {
		if !p.Level(i).Equal(p.Level(0)) {
			t.Errorf("level %d differs from level 0", i)
		}
	}
}

func TestBuildAutoLevels(t *testing.T) {
	p := Build(pixel.NewBuffer[pixel.Luma](256, 128), 0)
	if p.Len() != 8 {
		t.Errorf("got %d levels, want 8", p.Len())
	}
}

func TestBuildUniformIsInvariant(t *testing.T) {
	buf := pixel.NewBuffer[pixel.Rgb](4, 4)
	for i := range buf.Pix {
		buf.Pix[i] = pixel.Rgb{128, 128, 128}
	}

	p := Build(buf, 2)

	if p.Len() != 2 {
		t.Fatalf("got %d levels, want 2", p.Len())
	}
	checkShape(t, p, 4, 4)
	for i, l := range p.Levels {
		for j, px := range l.Pix {
			if px != (pixel.Rgb{128, 128, 128}) {
				t.Fatalf("level %d pixel %d: got %v, want [128 128 128]", i, j, px)
			}
		}
	}
}

func TestBottomIsOriginal(t *testing.T) {
	buf := checker(8, 8)
	p := Build(buf, 3)
	if p.Bottom() != buf {
		t.Error("Bottom should be the input buffer")
	}
	if p.Level(p.Len()-1) != p.Bottom() {
		t.Error("Bottom should be the last level")
	}
}

func TestCoarserLevelsAreSmoother(t *testing.T) {
	p := Build(checker(32, 32), 4)

	// contrast between neighbouring pixels shrinks as levels get coarser
	contrast := func(b *pixel.Buffer[pixel.Rgba]) int {
		d := int(b.At(16, 16)[0]) - int(b.At(17, 16)[0])
		if d < 0 {
			d = -d
		}
		return d
	}
	if c := contrast(p.Bottom()); c != 255 {
		t.Fatalf("bottom contrast: got %d, want 255", c)
	}
	for i := 0; i < p.Len()-1; i++ {
		if c := contrast(p.Level(i)); c >= 255 {
			t.Errorf("level %d contrast: got %d, want < 255", i, c)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(checker(20, 12), 3)
	b := Build(checker(20, 12), 3)
	for i := range a.Levels {
		if !a.Level(i).Equal(b.Level(i)) {
			t.Errorf("level %d differs between identical builds", i)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	p := Build(pixel.NewBuffer[pixel.Luma](0, 0), 3)
	if p.Len() != 3 {
		t.Errorf("got %d levels, want 3", p.Len())
	}
	if !p.Bottom().Empty() {
		t.Error("Bottom should be empty")
	}
}
