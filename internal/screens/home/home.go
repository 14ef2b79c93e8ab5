// Package home is the landing screen: a stats strip, the next
// recommendation and the main menu.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/custom"
	"github.com/abhisek/adaptiq/internal/screens/history"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/screens/stats"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
)

const (
	itemRecommended = iota
	itemCustom
	itemStats
	itemHistory
	itemReset
	itemQuit
)

// Screen is the home screen.
type Screen struct {
	tutor *tutor.Tutor
	sess  *session.Session

	menu      components.Menu
	rec       recommend.Reconciled
	stats     recommend.Stats
	remaining int

	confirmReset bool
	notice       string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Refresher = (*Screen)(nil)

func New(t *tutor.Tutor, s *session.Session) *Screen {
	h := &Screen{tutor: t, sess: s}
	h.menu = components.NewMenu([]components.MenuItem{
		itemRecommended: {Label: "Start Recommended", Action: h.startRecommended},
		itemCustom: {Label: "Custom Quiz", Action: func() tea.Cmd {
			return router.Push(custom.New(t, s))
		}},
		itemStats: {Label: "Statistics", Action: func() tea.Cmd {
			return router.Push(stats.New(t, s))
		}},
		itemHistory: {Label: "History", Action: func() tea.Cmd {
			return router.Push(history.New(t, s))
		}},
		itemReset: {Label: "Reset Progress", Action: func() tea.Cmd {
			h.confirmReset = true
			return nil
		}},
		itemQuit: {Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.Refresh()
	return h
}

func (h *Screen) Init() tea.Cmd { return nil }

func (h *Screen) Title() string { return "Home" }

// Refresh recomputes the recommendation and totals after the session changed.
func (h *Screen) Refresh() tea.Cmd {
	h.rec = h.tutor.Recommend(h.sess)
	h.stats = h.tutor.Stats(h.sess)
	h.remaining = h.tutor.Bank().RemainingCount(h.sess.Seen())

	item := &h.menu.Items[itemRecommended]
	item.Disabled = h.rec.Exhausted
	item.Hint = ""
	if !h.rec.Exhausted {
		item.Hint = fmt.Sprintf("%s · %s", h.rec.Topic, h.rec.Difficulty.Title())
	}
	h.menu.Items[itemHistory].Disabled = h.stats.TotalQuizzes == 0
	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu.Selected = itemCustom
	}
	return nil
}

func (h *Screen) KeyHints() []layout.KeyHint {
	if h.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset seen questions"},
			{Key: "A", Description: "Reset everything"},
			{Key: "N/Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *Screen) startRecommended() tea.Cmd {
	next, err := quiz.StartRecommended(h.tutor, h.sess)
	switch {
	case errors.Is(err, recommend.ErrExhausted):
		h.notice = "Every question has been seen. Reset progress to keep practicing."
		return nil
	case err != nil:
		h.notice = err.Error()
		return nil
	}
	return router.Push(next)
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	if h.confirmReset {
		return h, h.updateConfirm(kmsg.String())
	}

	h.notice = ""
	if kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) updateConfirm(key string) tea.Cmd {
	var err error
	switch key {
	case "y":
		err = h.tutor.Reset(context.Background(), h.sess)
		h.notice = "Seen questions cleared. Your history is kept."
	case "a":
		err = h.tutor.ResetAll(context.Background(), h.sess)
		h.notice = "All progress cleared."
	case "n", "esc":
		h.notice = ""
	default:
		return nil
	}
	h.confirmReset = false
	if err != nil {
		h.notice = "Reset failed: " + err.Error()
	}
	return h.Refresh()
}

func (h *Screen) View(width, height int) string {
	cw := contentWidth(width)
	sections := []string{
		renderStatsStrip(h.stats, h.remaining, h.tutor.Bank().Len(), cw),
		renderRecommendation(h.rec, cw),
	}
	if h.confirmReset {
		sections = append(sections, renderConfirm(cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}
	return layout.Center(strings.Join(sections, "\n\n"), width)
}
