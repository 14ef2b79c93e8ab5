package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	st "github.com/abhisek/adaptiq/internal/screens/screentest"
)

func newModel(t *testing.T) Model {
	t.Helper()
	tu, s := st.Tutor(t, 10)
	m := New(Options{Tutor: tu, Session: s})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if _, ok := st.Run(cmd).(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", st.Run(cmd))
	}
}

func TestModel_EscPopsPushedScreen(t *testing.T) {
	m := newModel(t)

	// Custom Quiz is the second menu entry.
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Update(st.Run(cmd))
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := st.Run(cmd).(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", st.Run(cmd))
	}
	m.Update(router.PopScreenMsg{})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestModel_StatusAndHints(t *testing.T) {
	m := newModel(t)
	if got := m.status(); got != "0 quizzes · 0/90 seen" {
		t.Errorf("status = %q", got)
	}
	hints := m.hints(m.router.Active())
	if len(hints) == 0 || hints[len(hints)-1].Key != "Q" {
		t.Errorf("expected home hints, got %+v", hints)
	}
}
