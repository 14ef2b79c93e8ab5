package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/session"
)

// StartQuizRequest starts a recommended quiz when Topic is empty and a
// custom one otherwise.
type StartQuizRequest struct {
	Topic      string `json:"topic" validate:"omitempty,max=100"`
	Difficulty string `json:"difficulty" validate:"required_with=Topic,omitempty,oneof=easy medium hard"`
	Count      int    `json:"count" validate:"gte=0,lte=100"`
}

type SubmitRequest struct {
	Answers []string `json:"answers" validate:"max=100"`
}

type sessionQuery struct {
	SessionID string `query:"session_id" json:"session_id" validate:"omitempty,uuid"`
}

type SessionView struct {
	ID          uuid.UUID `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	QuizCount   int       `json:"quiz_count"`
	SeenCount   int       `json:"seen_count"`
	Remaining   int       `json:"remaining"`
	OpenQuizzes int       `json:"open_quizzes"`
}

type QuestionView struct {
	ID      int               `json:"id"`
	Text    string            `json:"question"`
	Options map[string]string `json:"options"`
}

// QuizView is a quiz without its answers.
type QuizView struct {
	ID             uuid.UUID             `json:"id"`
	Topic          string                `json:"topic"`
	Difficulty     bank.Difficulty       `json:"difficulty"`
	Custom         bool                  `json:"custom"`
	Questions      []QuestionView        `json:"questions"`
	Recommendation *recommend.Reconciled `json:"recommendation,omitempty"`
}

type ResultView struct {
	session.Result
	Next recommend.Reconciled `json:"next"`
}

type TopicsView struct {
	Topics       []string          `json:"topics"`
	Difficulties []bank.Difficulty `json:"difficulties"`
	Total        int               `json:"total_questions"`
}

func quizView(q session.Quiz, rc *recommend.Reconciled) QuizView {
	v := QuizView{
		ID:             q.ID,
		Topic:          q.Topic,
		Difficulty:     q.Difficulty,
		Custom:         q.Custom,
		Questions:      make([]QuestionView, len(q.Questions)),
		Recommendation: rc,
	}
	for i, qq := range q.Questions {
		opts := make(map[string]string, len(bank.OptionLetters))
		for j, l := range bank.OptionLetters {
			opts[l] = qq.Options[j]
		}
		v.Questions[i] = QuestionView{ID: qq.ID, Text: qq.Text, Options: opts}
	}
	return v
}
