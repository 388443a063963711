// Package runner implements the obstacle-dodging animation: the obstacle
// scroller, the character motion state machine, the frame composer and the
// tick loop that drives them from a single digital input.
package runner

import (
	"context"
	"time"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/sprite"
)

// Frame describes one completed present.
type Frame struct {
	Seq       uint64 // 1-based present count, including the startup present
	Tick      uint64 // Orchestrator iteration, 0 for the startup present
	Pose      Pose   // What the character drew; no sprites for the startup present
	Motion    Motion // State after the sub-frame
	ObstacleX int    // Obstacle position when the frame was presented
	Indicator bool   // Indicator output at present time
}

// Logger receives state transitions at debug level. *log.Logger from
// github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger for state transitions.
func WithLogger(l Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithAtlas replaces the default sprite atlas.
func WithAtlas(a *sprite.Atlas) Option {
	return func(o *Orchestrator) {
		o.atlas = a
	}
}

// WithPresentHook registers fn to run after every successful present, on the
// orchestrator's goroutine.
func WithPresentHook(fn func(Frame)) Option {
	return func(o *Orchestrator) {
		o.hooks = append(o.hooks, fn)
	}
}

// Orchestrator is the outer loop. It owns all animation state and must only be
// driven from one goroutine.
type Orchestrator struct {
	composer     *Composer
	character    *Character
	scroller     *Scroller
	input        core.Input
	indicator    core.Indicator
	atlas        *sprite.Atlas
	logger       Logger
	hooks        []func(Frame)
	startupDelay time.Duration

	tick      uint64
	lit       bool
	lastPose  Pose
	startedAt time.Time
}

// New creates an orchestrator with the obstacle at the right edge and the
// character idle.
func New(d Display, in core.Input, ind core.Indicator, cfg core.RuntimeConfig, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		character:    NewCharacter(cfg),
		scroller:     NewScroller(cfg),
		input:        in,
		indicator:    ind,
		atlas:        sprite.Default(),
		logger:       nopLogger{},
		startupDelay: cfg.StartupDelay,
		lastPose:     Pose{Step: -1},
	}
	for _, opt := range opts {
		opt(o)
	}
	o.composer = NewComposer(d, o.atlas, cfg)
	return o
}

// Run starts the display, then ticks until ctx is cancelled or a present
// fails. There is no other exit.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.Start(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			o.logger.Debug("runner stopped", "ticks", o.tick, "presents", o.composer.Presents(),
				"uptime", time.Since(o.startedAt).Round(time.Millisecond))
			return err
		}
		if err := o.Tick(); err != nil {
			return err
		}
	}
}

// Start waits for the startup delay and presents the untouched buffer once.
// Callers driving Tick themselves call it first.
func (o *Orchestrator) Start(ctx context.Context) error {
	if o.startupDelay > 0 {
		timer := time.NewTimer(o.startupDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	o.startedAt = time.Now()
	return o.present()
}

// Tick runs one iteration: draw and advance the obstacle, sample the input,
// then either one idle frame (held) or a full jump (released).
func (o *Orchestrator) Tick() error {
	o.tick++

	o.composer.DrawObstacle(o.scroller.X())
	if o.scroller.Advance() {
		o.logger.Debug("obstacle wrapped", "tick", o.tick, "x", o.scroller.X())
	}

	if o.input.Sample() {
		o.setIndicator(false)
		pose := o.character.Step()
		o.composer.DrawIdle(pose)
		o.lastPose = pose
		return o.present()
	}

	o.setIndicator(true)
	return o.jump()
}

// jump runs every sub-frame of one jump without re-sampling the input.
func (o *Orchestrator) jump() error {
	o.character.StartJump()
	o.logger.Debug("jump started", "tick", o.tick, "obstacle", o.scroller.X())

	for o.character.Airborne() {
		pose := o.character.Step()
		o.composer.DrawJump(pose, o.scroller.X())
		o.scroller.Drift()
		o.lastPose = pose
		if err := o.present(); err != nil {
			return err
		}
	}

	o.logger.Debug("jump finished", "tick", o.tick, "obstacle", o.scroller.X())
	return nil
}

func (o *Orchestrator) present() error {
	if err := o.composer.Present(); err != nil {
		return err
	}
	if len(o.hooks) > 0 {
		f := o.Snapshot()
		for _, fn := range o.hooks {
			fn(f)
		}
	}
	return nil
}

func (o *Orchestrator) setIndicator(on bool) {
	o.lit = on
	o.indicator.Set(on)
}

// Snapshot describes the most recent present.
func (o *Orchestrator) Snapshot() Frame {
	return Frame{
		Seq:       o.composer.Presents(),
		Tick:      o.tick,
		Pose:      o.lastPose,
		Motion:    o.character.Motion(),
		ObstacleX: o.scroller.X(),
		Indicator: o.lit,
	}
}

// Presents returns the number of successful presents so far.
func (o *Orchestrator) Presents() uint64 {
	return o.composer.Presents()
}
