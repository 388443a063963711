package runner

import (
	"fmt"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/sprite"
)

// Display is the surface frames are composed on. Draw composites a bitmap onto
// a persistent buffer and clips silently; Present transfers the buffer to the
// device and may block for a bounded time.
type Display interface {
	Draw(b core.Bitmap, at core.Point)
	Present() error
}

// Composer issues the ordered draw calls for each sub-frame.
type Composer struct {
	display  Display
	atlas    *sprite.Atlas
	baseline int
	presents uint64
}

// NewComposer creates a composer drawing atlas sprites onto d.
func NewComposer(d Display, atlas *sprite.Atlas, cfg core.RuntimeConfig) *Composer {
	return &Composer{
		display:  d,
		atlas:    atlas,
		baseline: cfg.Baseline,
	}
}

// DrawObstacle draws the obstacle at x on the character's baseline row.
func (fc *Composer) DrawObstacle(x int) {
	fc.display.Draw(fc.atlas.Obstacle, core.Pt(x, fc.baseline))
}

// DrawIdle draws a running pose: body, then legs.
func (fc *Composer) DrawIdle(p Pose) {
	fc.display.Draw(fc.atlas.Body, p.Body)
	fc.display.Draw(fc.legs(p.Legs), p.LegsAt)
}

// DrawJump draws a jump sub-frame: blank patch (if any), obstacle, body, legs.
func (fc *Composer) DrawJump(p Pose, obstacleX int) {
	if p.Erase {
		fc.display.Draw(fc.atlas.BodyEraser, p.EraseAt)
	}
	fc.DrawObstacle(obstacleX)
	fc.display.Draw(fc.atlas.Body, p.Body)
	fc.display.Draw(fc.legs(p.Legs), p.LegsAt)
}

// Present flushes the display. Failures are returned as is; there is no retry.
func (fc *Composer) Present() error {
	if err := fc.display.Present(); err != nil {
		return fmt.Errorf("runner: present #%d: %w", fc.presents+1, err)
	}
	fc.presents++
	return nil
}

// Presents returns how many presents have succeeded.
func (fc *Composer) Presents() uint64 {
	return fc.presents
}

func (fc *Composer) legs(l Legs) *sprite.Sprite {
	switch l {
	case LegsA:
		return fc.atlas.LegsA
	case LegsB:
		return fc.atlas.LegsB
	default:
		return fc.atlas.LegsJump
	}
}
