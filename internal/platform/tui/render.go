package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oled-runner/internal/core"
)

// Theme holds the styles for the panel and its status bar.
type Theme struct {
	Bezel   lipgloss.Style
	Pixels  lipgloss.Style
	Title   lipgloss.Style
	LedOn   lipgloss.Style
	LedOff  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Warning lipgloss.Style
}

// NewTheme builds the theme with r, so SSH sessions get their own color profile.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Bezel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Pixels:  r.NewStyle().Foreground(lipgloss.Color("51")), // OLED cyan
		Title:   r.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		LedOn:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		LedOff:  r.NewStyle().Foreground(lipgloss.Color("238")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Value:   r.NewStyle().Foreground(lipgloss.Color("255")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("208")),
	}
}

// DefaultTheme returns the theme for the local terminal.
func DefaultTheme() Theme {
	return NewTheme(lipgloss.DefaultRenderer())
}

// PanelSize returns the terminal cells needed to show a w x h pixel panel,
// bezel included.
func PanelSize(w, h int) (cols, rows int) {
	return w + 2, (h+1)/2 + 2
}

// RenderPixels converts a framebuffer to half-block characters, two pixel rows
// per text line. An odd last row is paired with an unlit row.
func RenderPixels(fb *core.Framebuffer) string {
	var sb strings.Builder
	sb.Grow((fb.Width()*3 + 1) * (fb.Height() + 1) / 2)

	for y := 0; y < fb.Height(); y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < fb.Width(); x++ {
			top := fb.Pixel(x, y) == core.On
			bottom := fb.Pixel(x, y+1) == core.On
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
	}
	return sb.String()
}

// RenderPanel draws the framebuffer inside the bezel.
func RenderPanel(fb *core.Framebuffer, th Theme) string {
	return th.Bezel.Render(th.Pixels.Render(RenderPixels(fb)))
}

// Status is what the status bar shows.
type Status struct {
	Lamp     bool
	Held     bool
	Presents uint64
	Session  string
}

// RenderStatus draws the indicator LED and control state.
func RenderStatus(st Status, th Theme) string {
	led := th.LedOff.Render("●")
	if st.Lamp {
		led = th.LedOn.Render("●")
	}

	input := "released"
	if st.Held {
		input = "held"
	}

	parts := []string{
		th.Title.Render("oled-runner"),
		th.Label.Render("led ") + led,
		th.Label.Render("input ") + th.Value.Render(input),
		th.Label.Render("frames ") + th.Value.Render(fmt.Sprintf("%d", st.Presents)),
	}
	if st.Session != "" {
		parts = append(parts, th.Label.Render("session ")+th.Value.Render(st.Session))
	}
	return strings.Join(parts, th.Label.Render("  │  "))
}
