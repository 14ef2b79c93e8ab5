package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

var (
	buttonFocused = lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 2)

	buttonBlurred = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2)
)

// Button runs OnPress when enter is pressed while it has focus.
type Button struct {
	Label   string
	Focused bool
	OnPress func() tea.Cmd
}

func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{Label: label, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Focused {
		return buttonFocused.Render(b.Label)
	}
	return buttonBlurred.Render(b.Label)
}
