package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oled-runner/internal/core"
	"github.com/vovakirdan/oled-runner/internal/storage"
	"github.com/vovakirdan/oled-runner/internal/trace"
)

var (
	flagScript     string
	flagTicks      int
	flagTraceLimit int
	flagFrame      uint64
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Record and inspect headless runs",
	Long: `Run the animation without a display, driven by an input script, and
store every presented frame in the trace database for inspection.

Script words:
  hold N      button held for N ticks (one running frame each)
  release N   button released for N ticks (one full jump each)
  repeat      start over from the beginning (must be last)

Examples:
  runner trace run --script "hold 10 release 1 hold 5"
  runner trace run --script "release 1 hold 2 repeat" --ticks 300
  runner trace list
  runner trace show <run-id>
  runner trace show <run-id> --frame 12
  runner trace rm <run-id>`,
}

var traceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Record a headless run",
	Args:  cobra.NoArgs,
	Run:   runTraceRun,
}

var traceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	Run:   runTraceList,
}

var traceShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the frames of a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runTraceShow,
}

var traceRmCmd = &cobra.Command{
	Use:   "rm <run-id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runTraceRm,
}

func init() {
	traceRunCmd.Flags().StringVar(&flagScript, "script", "hold 10 release 1 hold 5", "Input script")
	traceRunCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Ticks to run (0 = one pass of the script)")
	traceListCmd.Flags().IntVar(&flagTraceLimit, "limit", 20, "Maximum runs to list")
	traceShowCmd.Flags().Uint64Var(&flagFrame, "frame", 0, "Print the pixels of this present (1-based)")

	traceCmd.AddCommand(traceRunCmd)
	traceCmd.AddCommand(traceListCmd)
	traceCmd.AddCommand(traceShowCmd)
	traceCmd.AddCommand(traceRmCmd)
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trace database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runTraceRun(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr, "trace")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	script, err := trace.ParseScript(flagScript)
	if err != nil {
		fatal(logger, "cannot parse script", err)
	}
	if !script.Repeat && flagTicks > script.Len() {
		logger.Warn("script ends before the last tick, the button stays held", "script_ticks", script.Len(), "ticks", flagTicks)
	}

	cfg, err := loadRuntimeConfig()
	if err != nil {
		fatal(logger, "cannot load config", err)
	}

	store := openStore()
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := trace.Run(ctx, store, script, cfg, trace.Options{Ticks: flagTicks, Logger: logger})
	if err != nil {
		fatal(logger, "trace failed", err)
	}

	fmt.Printf("Run %s\n", res.RunID)
	fmt.Printf("  ticks:    %d\n", res.Ticks)
	fmt.Printf("  presents: %d\n", res.Presents)
	fmt.Printf("  jumps:    %d\n", res.Jumps)
}

func runTraceList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	runs, err := store.Runs(flagTraceLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println("Record one with: runner trace run")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tCREATED\tFRAMES\tBLEND\tSCRIPT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Frames, r.Blend, r.Script)
	}
	w.Flush()
}

func runTraceShow(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	run, err := store.RunByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown run %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'runner trace list' to see recorded runs.")
		os.Exit(1)
	}

	fmt.Printf("Run %s  (%dx%d, %s, %d frames)\n", run.ID, run.Width, run.Height, run.Blend, run.Frames)
	fmt.Printf("Script: %s\n\n", run.Script)

	if flagFrame > 0 {
		showFrame(store, run, flagFrame)
		return
	}

	frames, err := store.Frames(run.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving frames: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTICK\tMOTION\tSTEP\tLEGS\tOBSTACLE\tLED")
	for _, f := range frames {
		step := "-"
		if f.Step >= 0 {
			step = fmt.Sprintf("%d", f.Step)
		}
		led := "off"
		if f.Indicator {
			led = "on"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%d\t%s\n", f.Seq, f.Tick, f.Motion, step, f.Legs, f.ObstacleX, led)
	}
	w.Flush()
}

func showFrame(store *storage.Store, run *storage.Run, seq uint64) {
	f, err := store.Frame(run.ID, seq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving frame: %v\n", err)
		os.Exit(1)
	}
	if f == nil {
		fmt.Fprintf(os.Stderr, "Error: run has no frame %d\n", seq)
		os.Exit(1)
	}

	blend, _ := core.ParseBlend(run.Blend)
	fb := core.NewFramebuffer(run.Width, run.Height, blend)
	if !fb.LoadBytes(f.Pixels) {
		fmt.Fprintf(os.Stderr, "Error: frame %d has %d bytes, not a %dx%d image\n", seq, len(f.Pixels), run.Width, run.Height)
		os.Exit(1)
	}

	fmt.Printf("Frame %d  tick %d  %s  legs %s  obstacle %d  %d pixels lit\n\n",
		f.Seq, f.Tick, f.Motion, f.Legs, f.ObstacleX, fb.Lit())
	fmt.Println(fb.String())
}

func runTraceRm(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	run, err := store.RunByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown run %q\n", args[0])
		os.Exit(1)
	}

	if err := store.DeleteRun(run.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted run %s (%d frames)\n", run.ID, run.Frames)
}
