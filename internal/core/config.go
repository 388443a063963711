package core

import "time"

// RuntimeConfig contains the host-independent settings handed to the runner at
// startup. The animation geometry lives here so tests and hosts agree on it.
type RuntimeConfig struct {
	DisplayW int   // Display width in pixels
	DisplayH int   // Display height in pixels
	Blend    Blend // How drawn bitmaps combine with the framebuffer

	CharacterX int // Left edge of the body sprite
	LegsX      int // Left edge of the leg sprites
	Baseline   int // Top row of the body while running (the obstacle shares it)
	LegsOffset int // Rows between the body's top row and the legs

	ObstacleEntryX int // Where the obstacle (re)enters from the right
	ObstacleExitX  int // At or below this the obstacle wraps
	ObstacleStep   int // Pixels moved per advance

	StartupDelay  time.Duration // Pause before the first present
	FrameInterval time.Duration // Bounded duration of one present on hosted surfaces

	InitiallyHeld bool // Whether hosted inputs start asserted
}

// DefaultConfig returns the geometry and timing of a 128x64 SSD1306 board.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		DisplayW:       128,
		DisplayH:       64,
		Blend:          BlendCopy,
		CharacterX:     4,
		LegsX:          8,
		Baseline:       30,
		LegsOffset:     13,
		ObstacleEntryX: 128,
		ObstacleExitX:  -8,
		ObstacleStep:   2,
		StartupDelay:   time.Second,
		FrameInterval:  30 * time.Millisecond,
		InitiallyHeld:  true,
	}
}
