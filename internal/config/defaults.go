package config

import (
	_ "embed"

	"github.com/vovakirdan/oled-runner/internal/core"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	rc := core.DefaultConfig()
	return RunnerConfig{
		Display: DisplayConfig{
			Width:  rc.DisplayW,
			Height: rc.DisplayH,
			Blend:  rc.Blend.String(),
		},
		Character: CharacterConfig{
			X:          rc.CharacterX,
			LegsX:      rc.LegsX,
			Baseline:   rc.Baseline,
			LegsOffset: rc.LegsOffset,
		},
		Obstacle: ObstacleConfig{
			EntryX: rc.ObstacleEntryX,
			ExitX:  rc.ObstacleExitX,
			Step:   rc.ObstacleStep,
		},
		Timing: TimingConfig{
			StartupDelay:  rc.StartupDelay,
			FrameInterval: rc.FrameInterval,
		},
		Input: InputConfig{
			InitiallyHeld: rc.InitiallyHeld,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
