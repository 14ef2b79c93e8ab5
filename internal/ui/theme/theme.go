// Package theme holds the colors and shared styles of the terminal player.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
)

var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Accent)
)

// BandColor picks the color used for a performance band.
func BandColor(b session.Band) color.Color {
	switch b {
	case session.BandExcellent:
		return Success
	case session.BandGood:
		return Secondary
	case session.BandFair:
		return Warning
	default:
		return Error
	}
}

// AccuracyColor colors a 0..1 accuracy the same way its band would be.
func AccuracyColor(acc float64) color.Color {
	return BandColor(session.BandFor(acc))
}

// DifficultyColor distinguishes the three difficulty levels.
func DifficultyColor(d bank.Difficulty) color.Color {
	switch d {
	case bank.Easy:
		return Success
	case bank.Medium:
		return Warning
	case bank.Hard:
		return Error
	default:
		return TextDim
	}
}
