// runner plays the OLED runner animation in the terminal, over SSH, or
// headless into a trace database.
//
// Usage:
//
//	runner play               - Run the animation in this terminal
//	runner serve              - Start SSH server, one animation per session
//	runner trace run          - Run headless from an input script and store every frame
//	runner trace list         - List stored trace runs
//	runner trace show <run>   - Show the frames of a stored run
//	runner trace rm <run>     - Delete a stored run
//	runner atlas [sprite]     - Print the sprite atlas
//	runner config             - Print the effective runner config
//
// Global flags:
//
//	--config <path>     - Runner config YAML (default: search ~/.oled-runner/configs, ./configs)
//	--blend <mode>      - Override display blend: copy or or
//	--log-level <lvl>   - debug, info, warn, error (default: info)
//	--log-file <path>   - Append logs to a file
//	--db <path>         - Trace database (default: ~/.oled-runner/trace.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/oled-runner/internal/config"
	"github.com/vovakirdan/oled-runner/internal/core"
)

var (
	// Global flags
	flagConfig   string
	flagBlend    string
	flagLogLevel string
	flagLogFile  string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "OLED runner - a one-button side-scroller for a 128x64 panel",
	Long: `OLED runner animates a small character running past a scrolling obstacle
on a 128x64 monochrome panel. A single button decides each tick: held keeps
the character running, released makes it jump.

Available commands:
  play     - Run the animation in this terminal
  serve    - Start SSH server for remote viewing
  trace    - Record and inspect headless runs
  atlas    - Print the sprite atlas
  config   - Print the runner configuration

Examples:
  runner play
  runner play --blend or
  runner serve --ssh :2222
  runner trace run --script "hold 10 release 1"
  runner trace list`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBlend, "blend", "", "Display blend mode override: copy, or")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.oled-runner/trace.db", "Path to trace database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(atlasCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Output goes to --log-file when set,
// otherwise to fallback.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// loadRuntimeConfig loads the config file and applies flag overrides.
func loadRuntimeConfig() (core.RuntimeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	if flagBlend != "" {
		cfg.Display.Blend = flagBlend
		if err := cfg.Validate(); err != nil {
			return core.RuntimeConfig{}, fmt.Errorf("--blend: %w", err)
		}
	}
	return cfg.RuntimeConfig(), nil
}

// fatal logs err and exits. Used once a logger exists.
func fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	if flagLogFile != "" {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	}
	os.Exit(1)
}
