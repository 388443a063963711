package sprite

// Atlas names.
const (
	NameBody           = "body"
	NameLegsA          = "legs-a"
	NameLegsB          = "legs-b"
	NameLegsJump       = "legs-jump"
	NameBodyEraser     = "body-eraser"
	NameObstacle       = "obstacle"
	NameObstacleEraser = "obstacle-eraser"
)

// Atlas is the fixed set of bitmaps the runner draws.
type Atlas struct {
	Body       *Sprite // 16px running character without legs
	LegsA      *Sprite // 8px, shown two ticks out of three
	LegsB      *Sprite // 8px, shown one tick out of three
	LegsJump   *Sprite // 8px, drawn on every jump sub-frame
	BodyEraser *Sprite // 16px blank patch masking previous body/leg rows
	Obstacle   *Sprite // 16px tall cactus

	// ObstacleEraser is blank atlas data with no caller in the animation loop.
	ObstacleEraser *Sprite
}

// All returns the sprites in declaration order.
func (a *Atlas) All() []*Sprite {
	return []*Sprite{a.Body, a.LegsA, a.LegsB, a.LegsJump, a.BodyEraser, a.Obstacle, a.ObstacleEraser}
}

// Lookup returns the sprite with the given name.
func (a *Atlas) Lookup(name string) (*Sprite, bool) {
	for _, s := range a.All() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

var defaultAtlas = &Atlas{
	Body: MustNew(NameBody, []byte{
		0b00000000, 0b00111110,
		0b00000000, 0b01101111,
		0b00000000, 0b01111111,
		0b00000000, 0b01111111,
		0b00000000, 0b01110000,
		0b10000000, 0b01111110,
		0b10000001, 0b11110000,
		0b11000011, 0b11110000,
		0b01100111, 0b11111100,
		0b01111111, 0b11110100,
		0b00111111, 0b11110000,
		0b00011111, 0b11100000,
		0b00001111, 0b11000000,
	}, 16),
	LegsA: MustNew(NameLegsA, []byte{
		0b10001000,
		0b11001000,
		0b00001100,
	}, 8),
	LegsB: MustNew(NameLegsB, []byte{
		0b11000110,
		0b10000000,
		0b11000000,
	}, 8),
	LegsJump: MustNew(NameLegsJump, []byte{
		0b11001000,
		0b10001000,
		0b11001100,
	}, 8),
	BodyEraser: MustNew(NameBodyEraser, make([]byte, 2*11), 16),
	Obstacle: MustNew(NameObstacle, []byte{
		0b00011000, 0b00000000,
		0b00011000, 0b00000000,
		0b11011000, 0b00000000,
		0b11011000, 0b00000000,
		0b11011011, 0b00000000,
		0b11011011, 0b00000000,
		0b11111011, 0b00000000,
		0b01111011, 0b00000000,
		0b00011111, 0b00000000,
		0b00011110, 0b00000000,
		0b00011000, 0b00000000,
		0b00011000, 0b00000000,
		0b00011000, 0b00000000,
		0b00011000, 0b00000000,
		0b00011000, 0b00000000,
		0b00011000, 0b00000000,
	}, 16),
	ObstacleEraser: MustNew(NameObstacleEraser, make([]byte, 6), 8),
}

// Default returns the shared compiled-in atlas. Sprites are immutable, so the
// same atlas is safe to use from every runner instance.
func Default() *Atlas {
	return defaultAtlas
}
