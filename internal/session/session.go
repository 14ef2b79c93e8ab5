// Package session holds one learner's quiz history and the ids of the
// questions they have already been shown.
package session

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adaptiq/internal/bank"
)

// ErrEmptyQuiz is returned when submitting a quiz with no questions.
var ErrEmptyQuiz = errors.New("quiz has no questions")

// Session is a single learner's state. It is not safe for concurrent
// writers; callers serialize access per session.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	history []QuizRecord
	seen    bank.IDSet
}

// New starts an empty session with a fresh id.
func New(now time.Time) *Session {
	return NewWithID(uuid.New(), now, nil, nil)
}

// NewWithID rebuilds a session from persisted state.
func NewWithID(id uuid.UUID, startedAt time.Time, history []QuizRecord, seen []int) *Session {
	return &Session{
		ID:        id,
		StartedAt: startedAt,
		history:   slices.Clone(history),
		seen:      bank.NewIDSet(seen...),
	}
}

// History returns the quiz summaries, oldest first.
func (s *Session) History() []Summary {
	out := make([]Summary, len(s.history))
	for i, r := range s.history {
		out[i] = r.Summary
	}
	return out
}

// Records returns the full quiz records, oldest first.
func (s *Session) Records() []QuizRecord {
	return slices.Clone(s.history)
}

// Seen returns a copy of the seen question ids.
func (s *Session) Seen() bank.IDSet {
	return s.seen.Clone()
}

// SeenCount returns how many distinct questions have been shown.
func (s *Session) SeenCount() int { return len(s.seen) }

// SubmitQuiz scores a quiz, appends it to the history and marks its
// questions as seen.
func (s *Session) SubmitQuiz(q Quiz, answers []string, now time.Time) (Result, error) {
	if len(q.Questions) == 0 {
		return Result{}, ErrEmptyQuiz
	}

	res := Score(q, answers, now)

	recAnswers := make([]string, len(res.Reviews))
	for i, r := range res.Reviews {
		recAnswers[i] = r.Answer
	}
	s.history = append(s.history, QuizRecord{
		Summary:     res.Summary,
		QuestionIDs: q.QuestionIDs(),
		Answers:     recAnswers,
	})
	s.seen.Add(q.QuestionIDs()...)
	return res, nil
}

// Reset clears the seen ids so every question becomes available again.
// The history is kept.
func (s *Session) Reset() {
	s.seen = bank.NewIDSet()
}

// ResetAll clears both the seen ids and the history.
func (s *Session) ResetAll() {
	s.seen = bank.NewIDSet()
	s.history = nil
}
