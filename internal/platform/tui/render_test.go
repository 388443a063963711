package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/oled-runner/internal/core"
)

func TestRenderPixelsHalfBlocks(t *testing.T) {
	fb := core.NewFramebuffer(4, 3, core.BlendCopy)
	fb.Set(0, 0, core.On) // top only
	fb.Set(1, 1, core.On) // bottom only
	fb.Set(2, 0, core.On) // both
	fb.Set(2, 1, core.On)
	fb.Set(3, 2, core.On) // odd last row

	got := RenderPixels(fb)
	expected := "▀▄█ \n   ▀"
	if got != expected {
		t.Errorf("RenderPixels() = %q, expected %q", got, expected)
	}
}

func TestRenderPixelsFullPanel(t *testing.T) {
	fb := core.NewFramebuffer(128, 64, core.BlendCopy)
	lines := strings.Split(RenderPixels(fb), "\n")

	if len(lines) != 32 {
		t.Fatalf("line count = %d, expected 32", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 128 {
			t.Errorf("line %d width = %d, expected 128", i, n)
		}
	}
}

func TestPanelSize(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{128, 64, 130, 34},
		{4, 3, 6, 4},
		{1, 1, 3, 3},
	}

	for _, tc := range tests {
		cols, rows := PanelSize(tc.w, tc.h)
		if cols != tc.cols || rows != tc.rows {
			t.Errorf("PanelSize(%d, %d) = %d, %d, expected %d, %d", tc.w, tc.h, cols, rows, tc.cols, tc.rows)
		}
	}
}

func TestRenderStatus(t *testing.T) {
	th := DefaultTheme()

	tests := []struct {
		name     string
		status   Status
		contains []string
	}{
		{"held", Status{Held: true, Presents: 12}, []string{"input", "held", "12"}},
		{"released", Status{Lamp: true}, []string{"released", "●"}},
		{"session", Status{Session: "ab12cd34"}, []string{"session", "ab12cd34"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderStatus(tc.status, th)
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderStatus() = %q, missing %q", got, want)
				}
			}
		})
	}
}
