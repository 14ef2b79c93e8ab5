package components

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// Scroller is a viewport sized at render time, for screens whose content
// can outgrow the terminal.
type Scroller struct {
	vp viewport.Model
}

func NewScroller() Scroller {
	vp := viewport.New()
	vp.SoftWrap = true
	return Scroller{vp: vp}
}

// Update scrolls on the viewport's default keys.
func (s *Scroller) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *Scroller) View(content string, width, height int) string {
	s.vp.SetWidth(width)
	s.vp.SetHeight(height)
	s.vp.SetContent(content)
	return s.vp.View()
}
