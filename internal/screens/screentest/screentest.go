// Package screentest has helpers shared by the screen tests.
package screentest

import (
	"context"
	"io"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/adaptiq/internal/bank/banktest"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
)

// Topics are the bank topics used by screen tests.
var Topics = []string{"Algorithms", "Python", "SQL"}

// Tutor returns an in-memory tutor over a deterministic bank with perPair
// questions per topic and difficulty, plus a fresh session.
func Tutor(t *testing.T, perPair int) (*tutor.Tutor, *session.Session) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	b := banktest.New(perPair, Topics...)
	tu := tutor.New(b, recommend.New(b.Topics()), tutor.WithLogger(log))
	s, err := tu.NewSession(context.Background())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return tu, s
}

// TakeQuiz runs one recommended quiz, answering every question right or wrong.
func TakeQuiz(t *testing.T, tu *tutor.Tutor, s *session.Session, right bool) session.Result {
	t.Helper()
	q, _, err := tu.StartRecommended(s)
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	res, err := tu.Submit(context.Background(), s, q, banktest.Answers(len(q.Questions), right))
	if err != nil {
		t.Fatalf("submit quiz: %v", err)
	}
	return res
}

// Rune is a printable key press.
func Rune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special is a non-printable key press such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Run executes cmd and returns its message, or nil for a nil command.
func Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
