package runner

import "github.com/vovakirdan/oled-runner/internal/core"

// Scroller owns the obstacle's horizontal position.
type Scroller struct {
	x     int
	entry int // Position the obstacle re-enters at
	exit  int // At or below this the obstacle wraps
	step  int // Pixels per advance
}

// NewScroller creates a scroller with the obstacle at the right edge.
func NewScroller(cfg core.RuntimeConfig) *Scroller {
	return &Scroller{
		x:     cfg.ObstacleEntryX,
		entry: cfg.ObstacleEntryX,
		exit:  cfg.ObstacleExitX,
		step:  cfg.ObstacleStep,
	}
}

// X returns the current obstacle position.
func (s *Scroller) X() int {
	return s.x
}

// Next returns the position that follows p: one step left while p is past the
// exit threshold, otherwise the entry position.
func (s *Scroller) Next(p int) int {
	if p > s.exit {
		return p - s.step
	}
	return s.entry
}

// Advance moves the obstacle once per tick, wrapping it back to the entry
// position when it is at or below the exit threshold. Reports whether it wrapped.
func (s *Scroller) Advance() bool {
	wrapped := s.x <= s.exit
	s.x = s.Next(s.x)
	return wrapped
}

// Drift moves the obstacle during a jump sub-frame. It never wraps: an obstacle
// that has reached the exit threshold waits there for the next Advance.
func (s *Scroller) Drift() {
	if s.x > s.exit {
		s.x -= s.step
	}
}
