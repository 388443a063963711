// Package config provides YAML-based runner configuration loading and
// conversion to the core runtime settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/oled-runner/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// RunnerConfig contains all configuration for the runner animation.
type RunnerConfig struct {
	Display   DisplayConfig   `yaml:"display"`
	Character CharacterConfig `yaml:"character"`
	Obstacle  ObstacleConfig  `yaml:"obstacle"`
	Timing    TimingConfig    `yaml:"timing"`
	Input     InputConfig     `yaml:"input"`
}

// DisplayConfig defines the panel geometry.
type DisplayConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Blend  string `yaml:"blend"` // "copy" or "or"
}

// CharacterConfig defines where the running figure is drawn.
type CharacterConfig struct {
	X          int `yaml:"x"`
	LegsX      int `yaml:"legs_x"`
	Baseline   int `yaml:"baseline"`
	LegsOffset int `yaml:"legs_offset"`
}

// ObstacleConfig defines the scroller track.
type ObstacleConfig struct {
	EntryX int `yaml:"entry_x"`
	ExitX  int `yaml:"exit_x"`
	Step   int `yaml:"step"`
}

// TimingConfig defines pacing. FrameInterval 0 means unthrottled.
type TimingConfig struct {
	StartupDelay  time.Duration `yaml:"startup_delay"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// InputConfig defines the initial state of software controls.
type InputConfig struct {
	InitiallyHeld bool `yaml:"initially_held"`
}

// Validate checks the config for values the runner cannot animate.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Obstacle.Step <= 0:
		return fmt.Errorf("%w: obstacle step %d", ErrInvalid, c.Obstacle.Step)
	case c.Obstacle.ExitX >= c.Obstacle.EntryX:
		return fmt.Errorf("%w: obstacle exit_x %d not left of entry_x %d", ErrInvalid, c.Obstacle.ExitX, c.Obstacle.EntryX)
	case c.Timing.StartupDelay < 0 || c.Timing.FrameInterval < 0:
		return fmt.Errorf("%w: negative timing", ErrInvalid)
	}
	if _, ok := core.ParseBlend(c.Display.Blend); !ok {
		return fmt.Errorf("%w: blend %q", ErrInvalid, c.Display.Blend)
	}
	return nil
}

// RuntimeConfig converts the file layout into core settings.
// Call Validate first; an unknown blend falls back to copy.
func (c RunnerConfig) RuntimeConfig() core.RuntimeConfig {
	blend, _ := core.ParseBlend(c.Display.Blend)
	return core.RuntimeConfig{
		DisplayW:       c.Display.Width,
		DisplayH:       c.Display.Height,
		Blend:          blend,
		CharacterX:     c.Character.X,
		LegsX:          c.Character.LegsX,
		Baseline:       c.Character.Baseline,
		LegsOffset:     c.Character.LegsOffset,
		ObstacleEntryX: c.Obstacle.EntryX,
		ObstacleExitX:  c.Obstacle.ExitX,
		ObstacleStep:   c.Obstacle.Step,
		StartupDelay:   c.Timing.StartupDelay,
		FrameInterval:  c.Timing.FrameInterval,
		InitiallyHeld:  c.Input.InitiallyHeld,
	}
}
