// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/ui/layout"
)

// Screen is one page of the player.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, without header and footer.
	View(width, height int) string

	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that show session data and need to
// reload it when they become active again.
type Refresher interface {
	Refresh() tea.Cmd
}
