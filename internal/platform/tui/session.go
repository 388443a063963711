package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/runner"
)

// Session is one runner animation with its software control, indicator and
// terminal surface.
type Session struct {
	Label string // Shown in the status bar; empty for local play

	cfg     core.RuntimeConfig
	control *core.Control
	lamp    *core.Lamp
	surface *Surface
	orch    *runner.Orchestrator
	logger  *log.Logger
	err     error
}

// NewSession wires a runner to a fresh surface. Extra options are passed to
// the orchestrator.
func NewSession(cfg core.RuntimeConfig, logger *log.Logger, opts ...runner.Option) *Session {
	s := &Session{
		cfg:     cfg,
		control: core.NewControl(cfg.InitiallyHeld),
		lamp:    &core.Lamp{},
		surface: NewSurface(cfg),
		logger:  logger,
	}
	opts = append([]runner.Option{runner.WithLogger(logger)}, opts...)
	s.orch = runner.New(s.surface, s.control, s.lamp, cfg, opts...)
	return s
}

// Control returns the session's input.
func (s *Session) Control() *core.Control {
	return s.control
}

// Lamp returns the session's indicator.
func (s *Session) Lamp() *core.Lamp {
	return s.lamp
}

// Run drives the runner until ctx is done or a present fails, then closes
// the frame stream. Cancellation is a normal stop and returns nil.
func (s *Session) Run(ctx context.Context) error {
	s.surface.bind(ctx)
	defer s.surface.close()

	err := s.orch.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		s.logger.Error("runner fault", "error", err, "presents", s.orch.Presents())
	}
	s.err = err
	return err
}

// Err returns the fault Run stopped with. Valid once the frame stream is closed.
func (s *Session) Err() error {
	return s.err
}

// Run plays one session in the local terminal until the user quits or ctx is
// done. The runner and the Bubble Tea program run side by side; whichever
// stops first stops the other.
func Run(ctx context.Context, cfg core.RuntimeConfig, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := NewSession(cfg, logger)
	p := tea.NewProgram(
		NewModel(s, cancel, DefaultTheme()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})

	return g.Wait()
}
