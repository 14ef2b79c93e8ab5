// Package app is the root Bubble Tea model of the terminal player.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/home"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/ui/layout"
)

// Options carries what the screens need.
type Options struct {
	Tutor   *tutor.Tutor
	Session *session.Session
}

// Model owns the router and draws the frame around the active screen.
type Model struct {
	router *router.Router
	tutor  *tutor.Tutor
	sess   *session.Session
	width  int
	height int
}

func New(opts Options) Model {
	return Model{
		router: router.New(home.New(opts.Tutor, opts.Session)),
		tutor:  opts.Tutor,
		sess:   opts.Session,
	}
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
		}
	}

	return m, m.router.Update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	h := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	v.SetContent(layout.RenderFrame(header, m.router.View(m.width, h), footer, m.width, m.height))
	return v
}

func (m Model) status() string {
	if m.sess == nil || m.tutor == nil {
		return ""
	}
	return fmt.Sprintf("%d quizzes · %d/%d seen",
		len(m.sess.History()), m.sess.SeenCount(), m.tutor.Bank().Len())
}

func (m Model) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the player and blocks until it exits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(New(opts)).Run(); err != nil {
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}
