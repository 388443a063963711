// Package oled drives a physical SSD1306-class panel. The panel keeps its own
// frame memory, so draws are written straight into it and Present flushes it
// over the bus.
package oled

import (
	"fmt"
	"image/color"

	"github.com/vovakirdan/oled-runner/internal/core"
)

// Panel is the subset of a TinyGo display driver the runner needs.
type Panel interface {
	SetPixel(x, y int16, c color.RGBA)
	Display() error
}

var (
	lit   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	unlit = color.RGBA{A: 255}
)

// Display implements runner.Display on a Panel.
type Display struct {
	panel  Panel
	bounds core.Rect
	blend  core.Blend
}

// NewDisplay wraps panel, clipping draws to a w x h area.
func NewDisplay(panel Panel, w, h int, blend core.Blend) *Display {
	return &Display{
		panel:  panel,
		bounds: core.NewRect(0, 0, w, h),
		blend:  blend,
	}
}

// Draw writes b into the panel's frame memory. Off-panel pixels are skipped.
// With BlendOr unlit bitmap pixels leave the panel untouched.
func (d *Display) Draw(b core.Bitmap, at core.Point) {
	area := core.NewRect(at.X, at.Y, b.Width(), b.Height()).Intersect(d.bounds)
	if area.Empty() {
		return
	}

	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			switch {
			case b.Bit(x-at.X, y-at.Y):
				d.panel.SetPixel(int16(x), int16(y), lit)
			case d.blend == core.BlendCopy:
				d.panel.SetPixel(int16(x), int16(y), unlit)
			}
		}
	}
}

// Present flushes frame memory to the panel.
func (d *Display) Present() error {
	if err := d.panel.Display(); err != nil {
		return fmt.Errorf("oled: flush: %w", err)
	}
	return nil
}
