package tui

import (
	"context"
	"time"

	"github.com/vovakirdan/oled-runner/internal/core"
)

// FrameMsg carries one presented frame to the Bubble Tea model.
type FrameMsg struct {
	Buffer *core.Framebuffer // Private copy of the framebuffer at present time
	Seq    uint64            // 1-based present number
}

// Surface is the terminal stand-in for the OLED panel. Draws land in a
// persistent framebuffer; Present publishes a copy to the UI and then holds
// for the configured frame interval, as the I2C flush does on hardware.
type Surface struct {
	fb       *core.Framebuffer
	frames   chan FrameMsg
	interval time.Duration
	ctx      context.Context
	seq      uint64
}

// NewSurface creates a blank surface for cfg's geometry and blend mode.
func NewSurface(cfg core.RuntimeConfig) *Surface {
	return &Surface{
		fb:       core.NewFramebuffer(cfg.DisplayW, cfg.DisplayH, cfg.Blend),
		frames:   make(chan FrameMsg, 1),
		interval: cfg.FrameInterval,
		ctx:      context.Background(),
	}
}

// Frames returns the channel presented frames are published on. Only the most
// recent unconsumed frame is kept.
func (s *Surface) Frames() <-chan FrameMsg {
	return s.frames
}

// Draw implements runner.Display.
func (s *Surface) Draw(b core.Bitmap, at core.Point) {
	s.fb.Draw(b, at)
}

// Present implements runner.Display. It fails only when the surface's
// context is done.
func (s *Surface) Present() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	s.seq++
	msg := FrameMsg{Buffer: s.fb.Clone(), Seq: s.seq}
	select {
	case s.frames <- msg:
	default:
		// Drop the stale frame; this goroutine is the only sender.
		select {
		case <-s.frames:
		default:
		}
		s.frames <- msg
	}

	if s.interval <= 0 {
		return nil
	}
	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	case <-timer.C:
		return nil
	}
}

// bind sets the context that bounds Present.
func (s *Surface) bind(ctx context.Context) {
	s.ctx = ctx
}

// close ends the frame stream. No Present may follow.
func (s *Surface) close() {
	close(s.frames)
}
