package core

import "strings"

// Bitmap is a read-only 1-bit image.
type Bitmap interface {
	Width() int
	Height() int
	// Bit reports whether the pixel at (x, y) is lit. Coordinates are
	// always within [0, Width()) x [0, Height()).
	Bit(x, y int) bool
}

// Blend selects how a drawn bitmap combines with the pixels already in the buffer.
type Blend int

const (
	// BlendCopy writes every pixel of the bitmap, lit or not, like an opaque
	// image draw on the SSD1306. Blank patches erase what is underneath.
	BlendCopy Blend = iota
	// BlendOr only turns pixels on; unlit bitmap pixels leave the buffer untouched.
	BlendOr
)

// String returns the config name of the blend mode.
func (b Blend) String() string {
	switch b {
	case BlendCopy:
		return "copy"
	case BlendOr:
		return "or"
	default:
		return "unknown"
	}
}

// ParseBlend converts a config name to a Blend. ok is false for unknown names.
func ParseBlend(s string) (Blend, bool) {
	switch s {
	case "", "copy":
		return BlendCopy, true
	case "or":
		return BlendOr, true
	default:
		return BlendCopy, false
	}
}

// Framebuffer is a persistent monochrome pixel buffer. Nothing is cleared between
// draws; callers erase explicitly.
type Framebuffer struct {
	width  int
	height int
	blend  Blend
	pixels []BinaryColor
}

// NewFramebuffer creates a blank buffer with the given dimensions.
func NewFramebuffer(width, height int, blend Blend) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		blend:  blend,
		pixels: make([]BinaryColor, width*height),
	}
}

// Width returns the buffer width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the buffer height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Blend returns the compositing mode.
func (f *Framebuffer) Blend() Blend {
	return f.blend
}

// Bounds returns the buffer rectangle anchored at the origin.
func (f *Framebuffer) Bounds() Rect {
	return NewRect(0, 0, f.width, f.height)
}

// Draw composites b with its top-left corner at at.
// Parts of the bitmap outside the buffer are clipped silently.
func (f *Framebuffer) Draw(b Bitmap, at Point) {
	dst := f.Bounds().Intersect(NewRect(at.X, at.Y, b.Width(), b.Height()))
	if dst.Empty() {
		return
	}
	for y := dst.Y; y < dst.Bottom(); y++ {
		row := y * f.width
		for x := dst.X; x < dst.Right(); x++ {
			lit := b.Bit(x-at.X, y-at.Y)
			if lit {
				f.pixels[row+x] = On
			} else if f.blend == BlendCopy {
				f.pixels[row+x] = Off
			}
		}
	}
}

// Set changes a single pixel. Out-of-bounds coordinates are silently ignored.
func (f *Framebuffer) Set(x, y int, c BinaryColor) {
	if !f.Bounds().Contains(x, y) {
		return
	}
	f.pixels[y*f.width+x] = c
}

// Pixel returns the pixel at (x, y); Off for out-of-bounds coordinates.
func (f *Framebuffer) Pixel(x, y int) BinaryColor {
	if !f.Bounds().Contains(x, y) {
		return Off
	}
	return f.pixels[y*f.width+x]
}

// Lit counts the pixels that are on.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, p := range f.pixels {
		if p {
			n++
		}
	}
	return n
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	for i := range f.pixels {
		f.pixels[i] = Off
	}
}

// Clone returns an independent copy of the buffer.
func (f *Framebuffer) Clone() *Framebuffer {
	c := &Framebuffer{
		width:  f.width,
		height: f.height,
		blend:  f.blend,
		pixels: make([]BinaryColor, len(f.pixels)),
	}
	copy(c.pixels, f.pixels)
	return c
}

// Bytes packs the buffer row-major, most significant bit first, with each row
// padded to a whole byte. This is the layout sprites use.
func (f *Framebuffer) Bytes() []byte {
	stride := (f.width + 7) / 8
	out := make([]byte, stride*f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.pixels[y*f.width+x] {
				out[y*stride+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return out
}

// LoadBytes replaces the buffer contents with data packed as by Bytes.
// It returns false if the length does not match the buffer geometry.
func (f *Framebuffer) LoadBytes(data []byte) bool {
	stride := (f.width + 7) / 8
	if len(data) != stride*f.height {
		return false
	}
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			f.pixels[y*f.width+x] = BinaryColor(data[y*stride+x/8]&(0x80>>(x%8)) != 0)
		}
	}
	return true
}

// String renders the buffer one character per pixel, '#' for lit and '.' for unlit.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow(f.width*f.height + f.height) // Pre-allocate for efficiency

	for y := 0; y < f.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < f.width; x++ {
			if f.pixels[y*f.width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
