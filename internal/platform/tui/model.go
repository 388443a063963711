package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oled-runner/internal/core"
)

// StoppedMsg is sent once the session's runner has returned.
type StoppedMsg struct {
	Err error // nil when the runner stopped because the session ended
}

// waitForFrame blocks on the next presented frame. When the stream closes it
// reports how the runner stopped.
func waitForFrame(s *Session) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-s.surface.Frames()
		if !ok {
			return StoppedMsg{Err: s.Err()}
		}
		return f
	}
}

// Model is the Bubble Tea model for one runner session. The runner itself
// lives on its own goroutine; the model only feeds the control and shows
// frames.
type Model struct {
	session *Session
	cancel  context.CancelFunc
	theme   Theme
	keys    KeyMap
	help    help.Model
	frame   *core.Framebuffer
	seq     uint64
	width   int
	height  int
	err     error
	stopped bool
}

// NewModel creates a model for s. cancel stops the session's runner and is
// called when the user quits.
func NewModel(s *Session, cancel context.CancelFunc, th Theme) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		session: s,
		cancel:  cancel,
		theme:   th,
		keys:    DefaultKeyMap(),
		help:    h,
		frame:   core.NewFramebuffer(s.cfg.DisplayW, s.cfg.DisplayH, s.cfg.Blend),
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.session)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = msg.Buffer
		m.seq = msg.Seq
		return m, waitForFrame(m.session)

	case StoppedMsg:
		m.stopped = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopped = true
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.session.control.Toggle()
	case key.Matches(msg, m.keys.Jump):
		m.session.control.Pulse()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// Err returns the runner fault that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the panel, the status bar and the help line.
func (m Model) View() string {
	if m.stopped {
		if m.err != nil {
			return m.theme.Warning.Render("runner stopped: "+m.err.Error()) + "\n"
		}
		return ""
	}

	cols, rows := PanelSize(m.frame.Width(), m.frame.Height())
	if m.width > 0 && (m.width < cols || m.height < rows+2) {
		return m.theme.Warning.Render(
			lipgloss.JoinVertical(lipgloss.Left,
				"terminal too small for the panel",
				m.theme.Label.Render(fmt.Sprintf("need %dx%d, have %dx%d", cols, rows+2, m.width, m.height)),
			),
		)
	}

	status := RenderStatus(Status{
		Lamp:     m.session.lamp.On(),
		Held:     m.session.control.Held(),
		Presents: m.seq,
		Session:  m.session.Label,
	}, m.theme)

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderPanel(m.frame, m.theme),
		status,
		m.help.View(m.keys),
	)
}
