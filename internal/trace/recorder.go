package trace

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/runner"
	"github.com/vovakirdan/oled-runner/internal/storage"
)

// DefaultBatchSize is how many frames are written per transaction.
const DefaultBatchSize = 64

// Sink receives recorded runs. *storage.Store implements it.
type Sink interface {
	BeginRun(r storage.Run) error
	RecordFrames(frames []storage.FrameRecord) error
}

var _ Sink = (*storage.Store)(nil)

// Recorder turns orchestrator frames into stored records, reading pixels
// from the framebuffer the orchestrator draws on.
type Recorder struct {
	runID string
	fb    *core.Framebuffer
}

// NewRecorder creates a recorder for fb with a fresh run ID.
func NewRecorder(fb *core.Framebuffer) *Recorder {
	return &Recorder{runID: uuid.NewString(), fb: fb}
}

// RunID returns the run the recorder tags frames with.
func (r *Recorder) RunID() string {
	return r.runID
}

// Record captures f together with the current framebuffer contents.
// It must be called from the present hook, before the next draw.
func (r *Recorder) Record(f runner.Frame) storage.FrameRecord {
	legs := ""
	if f.Tick > 0 {
		legs = f.Pose.Legs.String()
	}
	return storage.FrameRecord{
		RunID:     r.runID,
		Seq:       f.Seq,
		Tick:      f.Tick,
		Motion:    runner.MotionName(f.Motion),
		Step:      f.Pose.Step,
		LegPhase:  int(f.Pose.LegPhase),
		Legs:      legs,
		ObstacleX: f.ObstacleX,
		Indicator: f.Indicator,
		Pixels:    r.fb.Bytes(),
	}
}

// surface is a headless runner.Display backed by a framebuffer.
type surface struct {
	*core.Framebuffer
}

func (surface) Present() error { return nil }

// Options configures a headless traced run.
type Options struct {
	Ticks     int // Orchestrator iterations after the startup present
	BatchSize int // Frames per write transaction, DefaultBatchSize if 0
	Logger    *log.Logger
}

// Result summarises a traced run.
type Result struct {
	RunID    string
	Ticks    int
	Presents uint64
	Jumps    int
}

// Run drives a headless orchestrator from script and stores every present in
// sink. The startup delay is skipped. The orchestrator and the writer run
// concurrently; the first error from either stops both.
func Run(ctx context.Context, sink Sink, script *Script, cfg core.RuntimeConfig, opts Options) (Result, error) {
	if opts.Ticks <= 0 {
		opts.Ticks = script.Len()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	fb := core.NewFramebuffer(cfg.DisplayW, cfg.DisplayH, cfg.Blend)
	rec := NewRecorder(fb)
	res := Result{RunID: rec.RunID()}

	err := sink.BeginRun(storage.Run{
		ID:     rec.RunID(),
		Script: script.String(),
		Blend:  cfg.Blend.String(),
		Width:  cfg.DisplayW,
		Height: cfg.DisplayH,
	})
	if err != nil {
		return res, err
	}

	logger = logger.With("run", rec.RunID())
	logger.Info("trace started", "script", script.String(), "ticks", opts.Ticks, "blend", cfg.Blend)

	g, gctx := errgroup.WithContext(ctx)
	frames := make(chan storage.FrameRecord, opts.BatchSize)

	g.Go(func() error {
		batch := make([]storage.FrameRecord, 0, opts.BatchSize)
		for f := range frames {
			batch = append(batch, f)
			if len(batch) == opts.BatchSize {
				if err := sink.RecordFrames(batch); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		return sink.RecordFrames(batch)
	})

	g.Go(func() error {
		defer close(frames)

		var sendErr error
		hook := func(f runner.Frame) {
			if sendErr != nil {
				return
			}
			if f.Pose.Step == 0 {
				res.Jumps++
			}
			select {
			case frames <- rec.Record(f):
			case <-gctx.Done():
				sendErr = gctx.Err()
			}
		}

		cfg.StartupDelay = 0
		o := runner.New(surface{fb}, script.Input(), &core.Lamp{}, cfg,
			runner.WithLogger(logger), runner.WithPresentHook(hook))

		if err := o.Start(gctx); err != nil {
			return err
		}
		for i := 0; i < opts.Ticks; i++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := o.Tick(); err != nil {
				return err
			}
			if sendErr != nil {
				return sendErr
			}
			res.Ticks++
		}
		res.Presents = o.Presents()
		return sendErr
	})

	if err := g.Wait(); err != nil {
		return res, fmt.Errorf("trace: run %s: %w", rec.RunID(), err)
	}

	logger.Info("trace finished", "ticks", res.Ticks, "presents", res.Presents, "jumps", res.Jumps)
	return res, nil
}
