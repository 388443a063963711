package trace

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/runner"
	"github.com/vovakirdan/oled-runner/internal/storage"
)

func testOptions(ticks int) Options {
	return Options{Ticks: ticks, Logger: log.New(io.Discard)}
}

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	s, err := ParseScript(src)
	if err != nil {
		t.Fatalf("ParseScript(%q) returned error: %v", src, err)
	}
	return s
}

func TestRunStoresEveryPresent(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	res, err := Run(context.Background(), store, mustParse(t, "hold 3 release 1"), core.DefaultConfig(), testOptions(0))
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	// startup + 3 idle + one full jump
	wantPresents := 1 + 3 + runner.JumpSteps
	if res.Ticks != 4 || res.Presents != uint64(wantPresents) || res.Jumps != 1 {
		t.Errorf("Result = %+v, expected 4 ticks, %d presents, 1 jump", res, wantPresents)
	}

	frames, err := store.Frames(res.RunID)
	if err != nil {
		t.Fatalf("Frames() failed: %v", err)
	}
	if len(frames) != wantPresents {
		t.Fatalf("stored %d frames, expected %d", len(frames), wantPresents)
	}

	fb := core.NewFramebuffer(128, 64, core.BlendCopy)

	startup := frames[0]
	if startup.Tick != 0 || startup.Legs != "" || startup.Step != -1 {
		t.Errorf("startup frame = %+v", startup)
	}
	if !fb.LoadBytes(startup.Pixels) || fb.Lit() != 0 {
		t.Errorf("startup frame should be blank, %d pixels lit", fb.Lit())
	}

	idle := frames[1]
	if idle.Motion != "idle" || idle.Legs != "A" || idle.ObstacleX != 126 || idle.Indicator {
		t.Errorf("first idle frame = %+v", idle)
	}
	if !fb.LoadBytes(idle.Pixels) || fb.Pixel(14, 30) != core.On {
		t.Error("first idle frame should show the body's top row at (14, 30)")
	}

	jumpStart := frames[4]
	if jumpStart.Step != 0 || jumpStart.Legs != "jump" || !jumpStart.Indicator || jumpStart.Tick != 4 {
		t.Errorf("first jump frame = %+v", jumpStart)
	}

	last := frames[len(frames)-1]
	if last.Motion != "idle" || last.Step != runner.JumpSteps-1 {
		t.Errorf("last frame = %+v, expected landing sub-frame back in idle", last)
	}

	run, err := store.RunByID(res.RunID)
	if err != nil || run == nil {
		t.Fatalf("RunByID() = %v, %v", run, err)
	}
	if run.Script != "hold 3 release 1" || run.Frames != wantPresents || run.Blend != "copy" {
		t.Errorf("run = %+v", run)
	}
}

// failingSink accepts the run and a number of batches, then fails.
type failingSink struct {
	batches int
	begun   bool
}

var errDiskFull = errors.New("disk full")

func (s *failingSink) BeginRun(storage.Run) error {
	s.begun = true
	return nil
}

func (s *failingSink) RecordFrames(frames []storage.FrameRecord) error {
	if len(frames) == 0 {
		return nil
	}
	if s.batches == 0 {
		return errDiskFull
	}
	s.batches--
	return nil
}

func TestRunStopsOnSinkError(t *testing.T) {
	sink := &failingSink{batches: 1}
	opts := testOptions(1000)
	opts.BatchSize = 4

	res, err := Run(context.Background(), sink, mustParse(t, "release 1 repeat"), core.DefaultConfig(), opts)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Run() error = %v, expected %v", err, errDiskFull)
	}
	if res.Ticks >= 1000 {
		t.Errorf("Run() completed %d ticks despite the sink failing", res.Ticks)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &failingSink{batches: 100}, mustParse(t, "hold 1"), core.DefaultConfig(), testOptions(50))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}

func TestRecorderTagsFrames(t *testing.T) {
	fb := core.NewFramebuffer(16, 2, core.BlendCopy)
	fb.Set(0, 0, core.On)
	rec := NewRecorder(fb)

	got := rec.Record(runner.Frame{
		Seq:       7,
		Tick:      3,
		Pose:      runner.Pose{Step: 5, Legs: runner.LegsJump, LegPhase: 2},
		Motion:    runner.Jumping{Step: 6, LegPhase: 2},
		ObstacleX: 40,
		Indicator: true,
	})

	if got.RunID != rec.RunID() || got.Seq != 7 || got.Tick != 3 {
		t.Errorf("Record() ids = %+v", got)
	}
	if got.Motion != "jumping" || got.Legs != "jump" || got.Step != 5 || got.LegPhase != 2 {
		t.Errorf("Record() pose fields = %+v", got)
	}
	if len(got.Pixels) != 4 || got.Pixels[0] != 0x80 {
		t.Errorf("Record() pixels = %v, expected [128 0 0 0]", got.Pixels)
	}
}
