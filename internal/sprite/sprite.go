// Package sprite holds the compiled-in 1-bit bitmaps drawn by the runner.
package sprite

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGeometry is returned when bitmap data does not fit its declared width.
var ErrGeometry = errors.New("sprite: data does not match declared width")

// Sprite is an immutable 1-bit bitmap packed row-major, most significant bit
// first. The byte stride is fixed by the declared width when the sprite is built.
type Sprite struct {
	name   string
	width  int
	height int
	stride int
	data   []byte
}

// New builds a sprite from packed rows. Each row takes ceil(width/8) bytes and
// the height is derived from the data length.
func New(name string, data []byte, width int) (*Sprite, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %s has width %d", ErrGeometry, name, width)
	}
	stride := (width + 7) / 8
	if len(data) == 0 || len(data)%stride != 0 {
		return nil, fmt.Errorf("%w: %s has %d bytes for stride %d", ErrGeometry, name, len(data), stride)
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	return &Sprite{
		name:   name,
		width:  width,
		height: len(data) / stride,
		stride: stride,
		data:   buf,
	}, nil
}

// MustNew is like New but panics on a geometry mismatch.
// It is meant for package-level atlas data.
func MustNew(name string, data []byte, width int) *Sprite {
	s, err := New(name, data, width)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the atlas name of the sprite.
func (s *Sprite) Name() string {
	return s.name
}

// Width returns the declared width in pixels.
func (s *Sprite) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s *Sprite) Height() int {
	return s.height
}

// Stride returns the number of bytes per row.
func (s *Sprite) Stride() int {
	return s.stride
}

// Bit reports whether the pixel at (x, y) is lit.
func (s *Sprite) Bit(x, y int) bool {
	return s.data[y*s.stride+x/8]&(0x80>>(x%8)) != 0
}

// Blank reports whether no pixel is lit.
func (s *Sprite) Blank() bool {
	for _, b := range s.data {
		if b != 0 {
			return false
		}
	}
	return true
}

// String renders the sprite as ASCII art, '#' for lit pixels.
func (s *Sprite) String() string {
	var sb strings.Builder
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.width; x++ {
			if s.Bit(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
