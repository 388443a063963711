package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/oled-runner/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the runner configuration",
	Long: `Print the configuration the runner would start with, after the config
search and the --blend override.

With --defaults the embedded default file is printed instead, ready to be
saved as ~/.oled-runner/configs/runner.yaml and edited.

Examples:
  runner config
  runner config --blend or
  runner config --defaults > ~/.oled-runner/configs/runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default config file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagBlend != "" {
		cfg.Display.Blend = flagBlend
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: --blend: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
