package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// contentWidth is the shared width of every home section.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

func box(cw int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1)
}

func renderStatsStrip(st recommend.Stats, remaining, total, cw int) string {
	quizzes := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%d quizzes", st.TotalQuizzes))
	acc := theme.Dim.Render("no score yet")
	if st.TotalQuizzes > 0 {
		acc = lipgloss.NewStyle().Foreground(theme.AccuracyColor(st.OverallAccuracy)).Bold(true).
			Render(fmt.Sprintf("%.0f%% accuracy", st.OverallAccuracy*100))
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%d/%d unseen", remaining, total))

	return box(cw).Align(lipgloss.Center).
		BorderForeground(theme.Secondary).
		Render(quizzes + "   " + acc + "   " + left)
}

func renderRecommendation(rc recommend.Reconciled, cw int) string {
	title := theme.Title.Render("Recommended next")
	return box(cw).BorderForeground(theme.Primary).Render(title + "\n" + quiz.RecommendationView(rc))
}

func renderMenu(m components.Menu, cw int) string {
	return box(cw).Render(m.View())
}

func renderConfirm(cw int) string {
	return box(cw).BorderForeground(theme.Accent).Render(
		theme.Notice.Render("Reset progress?") + "\n\n" +
			"Y  forget which questions were seen\n" +
			"A  also erase quiz history\n" +
			"N  cancel")
}

func renderNotice(msg string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(theme.Notice.Render(msg))
}
