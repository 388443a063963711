//go:build tinygo

// Command firmware runs the runner animation on a 128x64 SSD1306 panel wired
// to I2C0, with an active-low button on D12 and the indicator on the board LED.
//
//	tinygo flash -target arduino-nano33 ./cmd/firmware
package main

import (
	"context"
	"machine"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/platform/oled"
	"github.com/vovakirdan/oled-runner/internal/runner"
)

const panelAddress = 0x3C

func main() {
	cfg := core.DefaultConfig()

	led := oled.NewLED(machine.LED)
	button := oled.NewButton(machine.D12)

	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz}); err != nil {
		panic("i2c: " + err.Error())
	}

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{
		Width:    int16(cfg.DisplayW),
		Height:   int16(cfg.DisplayH),
		Address:  panelAddress,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearBuffer()

	display := oled.NewDisplay(dev, cfg.DisplayW, cfg.DisplayH, cfg.Blend)

	// Any fault halts the board.
	err := runner.New(display, button, led, cfg).Run(context.Background())
	panic(err.Error())
}
