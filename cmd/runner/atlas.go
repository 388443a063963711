package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oled-runner/internal/sprite"
)

var atlasCmd = &cobra.Command{
	Use:   "atlas [sprite]",
	Short: "Print the sprite atlas",
	Long: `Print every sprite the runner draws with its geometry, one character per
pixel ('#' lit, '.' unlit). Pass a sprite name to print only that sprite.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAtlas,
}

func runAtlas(_ *cobra.Command, args []string) {
	atlas := sprite.Default()
	sprites := atlas.All()
	if len(args) == 1 {
		s, ok := atlas.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown sprite %q\n", args[0])
			os.Exit(1)
		}
		sprites = []*sprite.Sprite{s}
	}

	for i, s := range sprites {
		if i > 0 {
			fmt.Println()
		}
		note := ""
		if s.Blank() {
			note = "  (blank)"
		}
		fmt.Printf("%s  %dx%d  stride %d%s\n", s.Name(), s.Width(), s.Height(), s.Stride(), note)
		fmt.Println(s.String())
	}
}
