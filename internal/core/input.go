package core

import "sync/atomic"

// Input is the single digital control sampled once per orchestrator iteration.
type Input interface {
	// Sample reports whether the control is asserted (held).
	Sample() bool
}

// Indicator is a boolean output mirroring control state. It has no feedback path.
type Indicator interface {
	Set(on bool)
}

// InputFunc adapts a plain function to the Input interface.
type InputFunc func() bool

// Sample calls f.
func (f InputFunc) Sample() bool {
	return f()
}

// Control is a latched software input for hosts without a physical button.
// Key handlers write it from one goroutine while the runner samples it from another.
type Control struct {
	held    atomic.Bool
	release atomic.Int32 // Pending samples that must read as released
}

// NewControl creates a control in the given initial state.
func NewControl(held bool) *Control {
	c := &Control{}
	c.held.Store(held)
	return c
}

// Sample implements Input. A pending pulse wins over the latched state.
func (c *Control) Sample() bool {
	for {
		n := c.release.Load()
		if n <= 0 {
			return c.held.Load()
		}
		if c.release.CompareAndSwap(n, n-1) {
			return false
		}
	}
}

// Held returns the latched state without consuming a pulse.
func (c *Control) Held() bool {
	return c.held.Load()
}

// Set latches the control state.
func (c *Control) Set(held bool) {
	c.held.Store(held)
}

// Toggle flips the latched state and returns the new value.
func (c *Control) Toggle() bool {
	for {
		old := c.held.Load()
		if c.held.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Pulse makes the next sample read as released regardless of the latch,
// producing exactly one jump while the control is otherwise held.
func (c *Control) Pulse() {
	c.release.Add(1)
}

// Lamp is an Indicator that remembers its state for hosts to display.
type Lamp struct {
	on atomic.Bool
}

// Set implements Indicator.
func (l *Lamp) Set(on bool) {
	l.on.Store(on)
}

// On returns the current lamp state.
func (l *Lamp) On() bool {
	return l.on.Load()
}
