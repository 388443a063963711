package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/oled-runner/internal/platform/tui"
)

var (
	flagReleased bool
	flagNoDelay  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the animation in this terminal",
	Long: `Run the runner animation in this terminal. The panel is drawn with
half-block characters, so 128x64 pixels take 130x34 cells with the bezel.

The terminal keyboard stands in for the board's button:
  Space      - Hold / release the button (released = jump every tick)
  J/Up       - Release for exactly one sample (a single jump)
  ?          - Toggle help
  Q/Ctrl+C   - Quit

The LED in the status bar mirrors the board's indicator: lit while jumping.
Logs are discarded unless --log-file is given.

Examples:
  runner play
  runner play --blend or
  runner play --released --log-file runner.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagReleased, "released", false, "Start with the button released")
	playCmd.Flags().BoolVar(&flagNoDelay, "no-delay", false, "Skip the startup pause")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagReleased {
		cfg.InitiallyHeld = false
	}
	if flagNoDelay {
		cfg.StartupDelay = 0
	}

	// The alt screen owns stdout, so logs only go to a file
	logger, closeLog, err := newLogger(io.Discard, "runner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cols, rows := tui.PanelSize(cfg.DisplayW, cfg.DisplayH)
	rows += 2 // status bar and help line
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < cols || h < rows) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the panel needs %dx%d\n", w, h, cols, rows)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("play started", "blend", cfg.Blend, "held", cfg.InitiallyHeld)
	if err := tui.Run(ctx, cfg, logger); err != nil {
		// Logs may be discarded, so the fault always reaches stderr
		logger.Error("runner stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error: runner stopped: %v\n", err)
		os.Exit(1)
	}
	logger.Info("play ended")
}
