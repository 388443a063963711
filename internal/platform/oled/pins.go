//go:build tinygo

package oled

import (
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

var _ Panel = (*ssd1306.Device)(nil)

// Button is an active-low push button: the control is asserted while the
// pin reads low.
type Button struct {
	pin machine.Pin
}

// NewButton configures pin as a floating input.
func NewButton(pin machine.Pin) Button {
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	return Button{pin: pin}
}

// Sample implements core.Input.
func (b Button) Sample() bool {
	return !b.pin.Get()
}

// LED is an indicator on a digital output.
type LED struct {
	pin machine.Pin
}

// NewLED configures pin as an output, initially off.
func NewLED(pin machine.Pin) LED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return LED{pin: pin}
}

// Set implements core.Indicator.
func (l LED) Set(on bool) {
	l.pin.Set(on)
}
