package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput is a bubbles text input that only accepts digits.
type NumberInput struct {
	Model textinput.Model
}

func NewNumberInput(placeholder string, limit int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return NumberInput{Model: ti}
}

func (t NumberInput) Focus() (NumberInput, tea.Cmd) {
	cmd := t.Model.Focus()
	return t, cmd
}

func (t NumberInput) Blur() NumberInput {
	t.Model.Blur()
	return t
}

func (t NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if key := kmsg.String(); len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t NumberInput) View() string {
	return t.Model.View()
}

// Int parses the input, returning fallback when it is empty or invalid.
func (t NumberInput) Int(fallback int) int {
	n, err := strconv.Atoi(t.Model.Value())
	if err != nil {
		return fallback
	}
	return n
}
