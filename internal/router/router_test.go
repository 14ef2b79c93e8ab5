package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/screen"
)

type refreshMsg struct{ title string }

type stubScreen struct {
	title     string
	initRan   bool
	refreshed int
	got       []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

// refreshingScreen reloads when it is uncovered.
type refreshingScreen struct{ stubScreen }

func (s *refreshingScreen) Refresh() tea.Cmd {
	s.refreshed++
	return func() tea.Msg { return refreshMsg{title: s.title} }
}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	s2 := &stubScreen{title: "quiz"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "quiz" {
		t.Errorf("expected active 'quiz', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopRefreshesUncoveredScreen(t *testing.T) {
	home := &refreshingScreen{stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "stats"})

	cmd := r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if home.refreshed != 1 {
		t.Errorf("expected one refresh, got %d", home.refreshed)
	}
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if msg, ok := cmd().(refreshMsg); !ok || msg.title != "home" {
		t.Errorf("unexpected refresh message %#v", msg)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("expected nil command at bottom")
	}
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "quiz"})

	results := &stubScreen{title: "results"}
	r.Update(ReplaceScreenMsg{Screen: results})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "results" {
		t.Errorf("expected active 'results', got %q", r.Active().Title())
	}
	if !results.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestPopToRoot(t *testing.T) {
	home := &refreshingScreen{stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "custom"})
	r.Push(&stubScreen{title: "quiz"})

	r.Update(PopToRoot())

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if home.refreshed != 1 {
		t.Errorf("expected one refresh, got %d", home.refreshed)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	quiz := &stubScreen{title: "quiz"}
	r := New(home)
	r.Push(quiz)

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	if len(quiz.got) != 1 {
		t.Errorf("expected active screen to get 1 message, got %d", len(quiz.got))
	}
	if len(home.got) != 0 {
		t.Errorf("expected covered screen to get nothing, got %d", len(home.got))
	}
}

func TestPushCommand(t *testing.T) {
	s := &stubScreen{title: "stats"}
	msg, ok := Push(s)().(PushScreenMsg)
	if !ok || msg.Screen != screen.Screen(s) {
		t.Errorf("unexpected message %#v", msg)
	}
}
