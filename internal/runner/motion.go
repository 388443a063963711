package runner

import (
	"fmt"

	"github.com/vovakirdan/oled-runner/internal/core"
)

// JumpSteps is the number of sub-frames in one jump.
const JumpSteps = 28

// Sub-frames before eraseAscentBefore blank the rows under the rising body;
// sub-frames after eraseDescentAfter blank the rows above the falling body.
const (
	eraseAscentBefore = 8
	eraseDescentAfter = 22
	descentEraseLift  = 8
)

// jumpProfile is the vertical offset of each jump sub-frame: a six step rise,
// a plateau of 21 held for fifteen steps, a mirrored fall and a final landing row.
var jumpProfile = [JumpSteps]int{
	7, 11, 14, 17, 19, 20,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	20, 19, 17, 14, 11, 7,
	0,
}

// JumpProfile returns a copy of the per-sub-frame vertical offsets.
func JumpProfile() [JumpSteps]int {
	return jumpProfile
}

// Motion is the character's state: either Idle or Jumping.
type Motion interface {
	isMotion()
}

// Idle is the running state. LegPhase cycles 0, 1, 2 and selects the leg pose.
type Idle struct {
	LegPhase uint8
}

// Jumping is the airborne state. Step is the next sub-frame to draw; LegPhase is
// carried unchanged so running resumes where it left off.
type Jumping struct {
	Step     int
	LegPhase uint8
}

func (Idle) isMotion()    {}
func (Jumping) isMotion() {}

// MotionName returns a short label for logs and traces.
func MotionName(m Motion) string {
	switch m.(type) {
	case Idle:
		return "idle"
	case Jumping:
		return "jumping"
	default:
		return "unknown"
	}
}

// Legs identifies which leg sprite a pose uses.
type Legs int

const (
	LegsA Legs = iota
	LegsB
	LegsJump
)

// String returns the leg pose name.
func (l Legs) String() string {
	switch l {
	case LegsA:
		return "A"
	case LegsB:
		return "B"
	case LegsJump:
		return "jump"
	default:
		return "?"
	}
}

// Pose is what one step of the state machine decided to draw.
type Pose struct {
	Body     core.Point // Body sprite origin
	Legs     Legs       // Leg sprite to draw
	LegsAt   core.Point // Leg sprite origin
	Erase    bool       // Whether a blank patch precedes the body
	EraseAt  core.Point // Blank patch origin, valid when Erase is set
	Step     int        // Jump sub-frame index, -1 while idle
	Offset   int        // Vertical jump offset, 0 while idle
	LegPhase uint8      // Leg phase the pose was chosen from
}

// Jump reports whether the pose belongs to a jump sub-frame.
func (p Pose) Jump() bool {
	return p.Step >= 0
}

// Character is the motion state machine for the running figure.
type Character struct {
	x          int
	legsX      int
	baseline   int
	legsOffset int
	motion     Motion
}

// NewCharacter creates an idle character with leg phase 0.
func NewCharacter(cfg core.RuntimeConfig) *Character {
	return &Character{
		x:          cfg.CharacterX,
		legsX:      cfg.LegsX,
		baseline:   cfg.Baseline,
		legsOffset: cfg.LegsOffset,
		motion:     Idle{},
	}
}

// Motion returns the current state.
func (c *Character) Motion() Motion {
	return c.motion
}

// Airborne reports whether a jump is in progress.
func (c *Character) Airborne() bool {
	_, ok := c.motion.(Jumping)
	return ok
}

// StartJump enters Jumping at sub-frame 0, keeping the leg phase.
// It returns false if a jump is already running.
func (c *Character) StartJump() bool {
	switch m := c.motion.(type) {
	case Idle:
		c.motion = Jumping{Step: 0, LegPhase: m.LegPhase}
		return true
	case Jumping:
		return false
	default:
		panic(fmt.Sprintf("runner: unknown motion %T", m))
	}
}

// Step consumes one idle tick or one jump sub-frame and returns the pose to draw.
func (c *Character) Step() Pose {
	switch m := c.motion.(type) {
	case Idle:
		return c.stepIdle(m)
	case Jumping:
		return c.stepJump(m)
	default:
		panic(fmt.Sprintf("runner: unknown motion %T", m))
	}
}

// stepIdle shows pose A for phases 0 and 1 and pose B for phase 2.
func (c *Character) stepIdle(m Idle) Pose {
	pose := Pose{
		Body:     core.Pt(c.x, c.baseline),
		LegsAt:   core.Pt(c.legsX, c.baseline+c.legsOffset),
		Step:     -1,
		LegPhase: m.LegPhase,
	}

	phase := m.LegPhase
	if phase < 2 {
		pose.Legs = LegsA
		phase++
	} else {
		pose.Legs = LegsB
		phase++
		if phase == 3 {
			phase = 0
		}
	}

	c.motion = Idle{LegPhase: phase}
	return pose
}

func (c *Character) stepJump(m Jumping) Pose {
	i := m.Step
	offset := jumpProfile[i]
	top := c.baseline - offset

	pose := Pose{
		Body:     core.Pt(c.x, top),
		Legs:     LegsJump,
		LegsAt:   core.Pt(c.legsX, top+c.legsOffset),
		Step:     i,
		Offset:   offset,
		LegPhase: m.LegPhase,
	}

	switch {
	case i < eraseAscentBefore:
		pose.Erase = true
		pose.EraseAt = core.Pt(c.x, top+c.legsOffset)
	case i > eraseDescentAfter:
		pose.Erase = true
		pose.EraseAt = core.Pt(c.x, top-descentEraseLift)
	}

	if i+1 >= JumpSteps {
		c.motion = Idle{LegPhase: m.LegPhase}
	} else {
		c.motion = Jumping{Step: i + 1, LegPhase: m.LegPhase}
	}
	return pose
}
