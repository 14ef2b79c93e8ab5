package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/custom"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	st "github.com/abhisek/adaptiq/internal/screens/screentest"
	"github.com/abhisek/adaptiq/internal/screens/stats"
)

func TestHomeScreen_FirstVisit(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	h := New(tu, s)

	if h.Title() != "Home" {
		t.Errorf("Title = %q", h.Title())
	}
	if !h.menu.Items[itemHistory].Disabled {
		t.Error("history should be disabled before the first quiz")
	}
	view := h.View(100, 40)
	for _, want := range []string{"0 quizzes", "90/90 unseen", "Recommended next", "Python", "Start Recommended"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_StartRecommended(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	h := New(tu, s)

	_, cmd := h.Update(st.Special(tea.KeyEnter))
	msg, ok := st.Run(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", st.Run(cmd))
	}
	if _, ok := msg.Screen.(*quiz.Screen); !ok {
		t.Errorf("expected quiz screen, got %T", msg.Screen)
	}
}

func TestHomeScreen_MenuNavigation(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		check func(msg tea.Msg) bool
	}{
		{"custom", 1, func(msg tea.Msg) bool {
			p, ok := msg.(router.PushScreenMsg)
			_, isCustom := p.Screen.(*custom.Screen)
			return ok && isCustom
		}},
		{"stats", 2, func(msg tea.Msg) bool {
			p, ok := msg.(router.PushScreenMsg)
			_, isStats := p.Screen.(*stats.Screen)
			return ok && isStats
		}},
		{"quit skips disabled history", 4, func(msg tea.Msg) bool {
			_, ok := msg.(tea.QuitMsg)
			return ok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu, s := st.Tutor(t, 10)
			h := New(tu, s)
			for range tt.downs {
				h.Update(st.Special(tea.KeyDown))
			}
			_, cmd := h.Update(st.Special(tea.KeyEnter))
			if msg := st.Run(cmd); !tt.check(msg) {
				t.Errorf("unexpected message %T", msg)
			}
		})
	}
}

func TestHomeScreen_RefreshAfterQuiz(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	h := New(tu, s)

	st.TakeQuiz(t, tu, s, true)
	h.Refresh()

	if h.stats.TotalQuizzes != 1 || h.remaining != 85 {
		t.Errorf("stats not refreshed: %d quizzes, %d remaining", h.stats.TotalQuizzes, h.remaining)
	}
	if h.menu.Items[itemHistory].Disabled {
		t.Error("history should be enabled after a quiz")
	}
	if !strings.Contains(h.View(100, 40), "100% accuracy") {
		t.Error("expected overall accuracy in view")
	}
}

func TestHomeScreen_Reset(t *testing.T) {
	tests := []struct {
		key         rune
		wantQuizzes int
		wantSeen    int
	}{
		{'y', 1, 0},
		{'a', 0, 0},
		{'n', 1, 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			tu, s := st.Tutor(t, 10)
			st.TakeQuiz(t, tu, s, true)
			h := New(tu, s)

			h.menu.Selected = itemReset
			h.Update(st.Special(tea.KeyEnter))
			if !h.confirmReset {
				t.Fatal("expected reset confirmation")
			}
			h.Update(st.Rune(tt.key))

			if h.confirmReset {
				t.Error("confirmation should close")
			}
			if got := len(s.History()); got != tt.wantQuizzes {
				t.Errorf("history = %d, want %d", got, tt.wantQuizzes)
			}
			if got := s.SeenCount(); got != tt.wantSeen {
				t.Errorf("seen = %d, want %d", got, tt.wantSeen)
			}
		})
	}
}

func TestHomeScreen_ExhaustedDisablesRecommended(t *testing.T) {
	tu, s := st.Tutor(t, 1)
	for i := 0; i < 20 && !tu.Recommend(s).Exhausted; i++ {
		st.TakeQuiz(t, tu, s, true)
	}
	h := New(tu, s)

	if !h.menu.Items[itemRecommended].Disabled {
		t.Error("Start Recommended should be disabled")
	}
	if h.menu.Selected != itemCustom {
		t.Errorf("cursor = %d, want custom", h.menu.Selected)
	}
	if !strings.Contains(h.View(100, 40), "All questions have been seen") {
		t.Error("expected exhausted notice in recommendation card")
	}
}
