package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label and trailing text.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Percent    float64
	Suffix     string
	Width      int
	Fill       color.Color
}

// NewProgressBar returns a bar that shows the percentage after it.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Suffix:  fmt.Sprintf("%3d%%", int(percent*100+0.5)),
		Width:   width,
		Fill:    theme.Secondary,
	}
}

// Steps returns a bar that shows "done/total" after it.
func Steps(done, total, width int) ProgressBar {
	var pct float64
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	p := NewProgressBar("", pct, width)
	p.Suffix = fmt.Sprintf("%d/%d", done, total)
	return p
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Width(p.LabelWidth).Render(p.Label) + "  "
	}
	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + theme.Dim.Render(p.Suffix)
	}

	bar := max(p.Width-lipgloss.Width(out)-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(bar)*p.Percent), 0), bar)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	out += lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled))
	out += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", bar-filled))
	return out + suffix
}
