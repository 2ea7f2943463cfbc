package pixel

// Rgb is an opaque three-channel color pixel.
type Rgb [3]uint8

// Rgba is a color pixel with straight (non-premultiplied) alpha.
type Rgba [4]uint8

// Luma is a single-channel intensity pixel.
type Luma [1]uint8

// LumaA is an intensity pixel with straight alpha.
type LumaA [2]uint8

func (Rgb) Channels() int { return 3 }
func (Rgb) ColorLen() int { return 3 }
func (p Rgb) Colors() []uint8 { return p[:] }
func (p Rgb) First() uint8 { return p[0] }
func (Rgb) Alpha() (uint8, bool) { return 0, false }
func (Rgb) Grey(v uint8) Rgb { return Rgb{v, v, v} }

func (p Rgb) WritePremultiplied(dst []uint8) {
	dst[0], dst[1], dst[2] = p[0], p[1], p[2]
}

func (Rgb) fromNRGBA(r, g, b, _ uint8) Rgb { return Rgb{r, g, b} }

func (p Rgb) toNRGBA(dst []uint8) {
	dst[0], dst[1], dst[2], dst[3] = p[0], p[1], p[2], 0xff
}

func (Rgba) Channels() int { return 4 }
func (Rgba) ColorLen() int { return 3 }
func (p Rgba) Colors() []uint8 { return p[:3] }
func (p Rgba) First() uint8 { return p[0] }
func (p Rgba) Alpha() (uint8, bool) { return p[3], true }
func (Rgba) Grey(v uint8) Rgba { return Rgba{v, v, v, 0xff} }

func (p Rgba) WritePremultiplied(dst []uint8) {
	dst[0] = premultiply(p[0], p[3])
	dst[1] = premultiply(p[1], p[3])
	dst[2] = premultiply(p[2], p[3])
}

func (Rgba) fromNRGBA(r, g, b, a uint8) Rgba { return Rgba{r, g, b, a} }

func (p Rgba) toNRGBA(dst []uint8) {
	dst[0], dst[1], dst[2], dst[3] = p[0], p[1], p[2], p[3]
}

func (Luma) Channels() int { return 1 }
func (Luma) ColorLen() int { return 1 }
func (p Luma) Colors() []uint8 { return p[:] }
func (p Luma) First() uint8 { return p[0] }
func (Luma) Alpha() (uint8, bool) { return 0, false }
func (Luma) Grey(v uint8) Luma { return Luma{v} }

func (p Luma) WritePremultiplied(dst []uint8) {
	dst[0] = p[0]
}

func (Luma) fromNRGBA(r, g, b, _ uint8) Luma { return Luma{luma(r, g, b)} }

func (p Luma) toNRGBA(dst []uint8) {
	dst[0], dst[1], dst[2], dst[3] = p[0], p[0], p[0], 0xff
}

func (LumaA) Channels() int { return 2 }
func (LumaA) ColorLen() int { return 1 }
func (p LumaA) Colors() []uint8 { return p[:1] }
func (p LumaA) First() uint8 { return p[0] }
func (p LumaA) Alpha() (uint8, bool) { return p[1], true }
func (LumaA) Grey(v uint8) LumaA { return LumaA{v, 0xff} }

func (p LumaA) WritePremultiplied(dst []uint8) {
	dst[0] = premultiply(p[0], p[1])
}

func (LumaA) fromNRGBA(r, g, b, a uint8) LumaA { return LumaA{luma(r, g, b), a} }

func (p LumaA) toNRGBA(dst []uint8) {
	dst[0], dst[1], dst[2], dst[3] = p[0], p[0], p[0], p[1]
}
