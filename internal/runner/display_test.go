package runner

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/sprite"
)

var errPresent = errors.New("bus nack")

// drawOp is one recorded Draw call.
type drawOp struct {
	name string
	at   core.Point
}

// recordingDisplay captures draw calls grouped by present.
type recordingDisplay struct {
	frames  [][]drawOp
	pending []drawOp
	failAt  int // 1-based present that fails; 0 never fails
}

func (d *recordingDisplay) Draw(b core.Bitmap, at core.Point) {
	d.pending = append(d.pending, drawOp{name: b.(*sprite.Sprite).Name(), at: at})
}

func (d *recordingDisplay) Present() error {
	if d.failAt > 0 && len(d.frames)+1 == d.failAt {
		return errPresent
	}
	d.frames = append(d.frames, d.pending)
	d.pending = nil
	return nil
}

// find returns the first op with the given sprite name in a frame.
func find(frame []drawOp, name string) (drawOp, bool) {
	for _, op := range frame {
		if op.name == name {
			return op, true
		}
	}
	return drawOp{}, false
}

// testConfig is the default geometry with no startup pause.
func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.StartupDelay = 0
	return cfg
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// inputSeq samples a fixed sequence and then stays held.
type inputSeq struct {
	samples []bool
	n       int
}

func (s *inputSeq) Sample() bool {
	defer func() { s.n++ }()
	if s.n < len(s.samples) {
		return s.samples[s.n]
	}
	return true
}

func held(n int) *inputSeq {
	s := &inputSeq{samples: make([]bool, n)}
	for i := range s.samples {
		s.samples[i] = true
	}
	return s
}
