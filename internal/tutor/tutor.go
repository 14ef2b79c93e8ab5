// Package tutor ties the question bank, recommender, predictor and store
// together behind the operations both front-ends use.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/predict"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/store"
)

var (
	// ErrNoQuestions means the requested pair has nothing unseen left.
	ErrNoQuestions = errors.New("no unseen questions for this topic and difficulty")

	ErrQuizNotFound    = errors.New("quiz not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownTopic    = errors.New("unknown topic")
)

// Repos are the persistence hooks. Any of them may be nil, in which case
// that part of the state lives only in memory.
type Repos struct {
	Sessions store.SessionRepo
	History  store.HistoryRepo
	Seen     store.SeenRepo
}

// ReposFrom returns the repos backed by s.
func ReposFrom(s *store.Store) Repos {
	return Repos{
		Sessions: s.SessionRepo(),
		History:  s.HistoryRepo(),
		Seen:     s.SeenRepo(),
	}
}

type Tutor struct {
	bank      *bank.Bank
	rec       *recommend.Recommender
	repos     Repos
	predictor *predict.Service
	log       logrus.FieldLogger
	now       func() time.Time
}

type Option func(*Tutor)

func WithRepos(r Repos) Option { return func(t *Tutor) { t.repos = r } }

func WithPredictor(p *predict.Service) Option { return func(t *Tutor) { t.predictor = p } }

func WithLogger(l logrus.FieldLogger) Option { return func(t *Tutor) { t.log = l } }

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(t *Tutor) { t.now = now } }

func New(b *bank.Bank, rec *recommend.Recommender, opts ...Option) *Tutor {
	t := &Tutor{
		bank: b,
		rec:  rec,
		log:  logrus.StandardLogger(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	if t.predictor == nil {
		t.predictor = predict.NewService(predict.WithLogger(t.log))
	}
	return t
}

func (t *Tutor) Bank() *bank.Bank                    { return t.bank }
func (t *Tutor) Recommender() *recommend.Recommender { return t.rec }
func (t *Tutor) Policy() recommend.Policy            { return t.rec.Policy() }

// NewSession starts and persists a fresh session.
func (t *Tutor) NewSession(ctx context.Context) (*session.Session, error) {
	s := session.New(t.now().UTC())
	if t.repos.Sessions != nil {
		if err := t.repos.Sessions.Create(ctx, s.ID, s.StartedAt); err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
	}
	t.log.WithField("session", s.ID).Info("session started")
	return s, nil
}

// LoadSession rebuilds a persisted session with its history and seen ids.
func (t *Tutor) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	if t.repos.Sessions == nil {
		return nil, ErrSessionNotFound
	}
	rec, err := t.repos.Sessions.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return t.hydrate(ctx, rec)
}

// ResumeLatest returns the most recently used session, or a new one.
func (t *Tutor) ResumeLatest(ctx context.Context) (*session.Session, error) {
	if t.repos.Sessions == nil {
		return t.NewSession(ctx)
	}
	rec, err := t.repos.Sessions.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("find latest session: %w", err)
	}
	if rec == nil {
		return t.NewSession(ctx)
	}
	return t.hydrate(ctx, rec)
}

func (t *Tutor) hydrate(ctx context.Context, rec *store.SessionRecord) (*session.Session, error) {
	var records []session.QuizRecord
	if t.repos.History != nil {
		rows, err := t.repos.History.ListQuizzes(ctx, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		for _, r := range rows {
			d, err := bank.ParseDifficulty(r.Difficulty)
			if err != nil {
				t.log.WithField("sequence", r.Sequence).WithError(err).Warn("skipping stored quiz")
				continue
			}
			records = append(records, session.QuizRecord{
				Summary: session.Summary{
					Topic:      r.Topic,
					Difficulty: d,
					Correct:    r.Correct,
					Total:      r.Total,
					Accuracy:   r.Accuracy,
					Timestamp:  r.Timestamp,
				},
				QuestionIDs: r.QuestionIDs,
				Answers:     r.Answers,
			})
		}
	}

	var seen []int
	if t.repos.Seen != nil {
		ids, err := t.repos.Seen.ListSeen(ctx, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("load seen questions: %w", err)
		}
		seen = ids
	}
	return session.NewWithID(rec.ID, rec.StartedAt, records, seen), nil
}

// Recommend runs the decision tree on the session history and fits the
// result to what is left in the bank.
func (t *Tutor) Recommend(s *session.Session) recommend.Reconciled {
	return t.rec.Recommend(s.History(), t.bank, s.Seen())
}

// StartRecommended builds a quiz from the current recommendation.
func (t *Tutor) StartRecommended(s *session.Session) (session.Quiz, recommend.Reconciled, error) {
	rc := t.Recommend(s)
	if rc.Exhausted {
		return session.Quiz{}, rc, recommend.ErrExhausted
	}
	q, err := t.startQuiz(s, rc.Topic, rc.Difficulty, rc.NumQuestions, false)
	return q, rc, err
}

// StartQuiz builds a custom quiz. The count is clamped to
// [1, policy.MaxQuestions].
func (t *Tutor) StartQuiz(s *session.Session, topic string, d bank.Difficulty, n int) (session.Quiz, error) {
	if !t.bank.HasTopic(topic) {
		return session.Quiz{}, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	n = max(1, min(n, t.rec.Policy().MaxQuestions))
	return t.startQuiz(s, topic, d, n, true)
}

func (t *Tutor) startQuiz(s *session.Session, topic string, d bank.Difficulty, n int, custom bool) (session.Quiz, error) {
	qs := t.bank.Sample(topic, d, n, s.Seen())
	if len(qs) == 0 {
		return session.Quiz{}, ErrNoQuestions
	}
	q := session.NewQuiz(topic, d, qs, custom, t.now().UTC())
	t.log.WithFields(logrus.Fields{
		"session":    s.ID,
		"quiz":       q.ID,
		"topic":      topic,
		"difficulty": d,
		"questions":  len(qs),
		"custom":     custom,
	}).Debug("quiz started")
	return q, nil
}

// Submit scores the quiz, updates the session and persists the outcome.
// Persistence failures are logged, not returned.
func (t *Tutor) Submit(ctx context.Context, s *session.Session, q session.Quiz, answers []string) (session.Result, error) {
	now := t.now().UTC()
	res, err := s.SubmitQuiz(q, answers, now)
	if err != nil {
		return session.Result{}, err
	}

	log := t.log.WithFields(logrus.Fields{"session": s.ID, "quiz": q.ID})
	log.WithFields(logrus.Fields{
		"topic":    q.Topic,
		"correct":  res.Summary.Correct,
		"total":    res.Summary.Total,
		"accuracy": res.Summary.Accuracy,
	}).Info("quiz submitted")

	// Persist the normalized answers so a reloaded session matches this one.
	recorded := make([]string, len(res.Reviews))
	for i, r := range res.Reviews {
		recorded[i] = r.Answer
	}
	if t.repos.History != nil {
		err := t.repos.History.AppendQuiz(ctx, s.ID, store.QuizData{
			Timestamp:   now,
			Topic:       q.Topic,
			Difficulty:  string(q.Difficulty),
			Correct:     res.Summary.Correct,
			Total:       res.Summary.Total,
			Accuracy:    res.Summary.Accuracy,
			QuestionIDs: q.QuestionIDs(),
			Answers:     recorded,
		})
		if err != nil {
			log.WithError(err).Error("failed to persist quiz")
		}
	}
	if t.repos.Seen != nil {
		if err := t.repos.Seen.MarkSeen(ctx, s.ID, q.QuestionIDs(), now); err != nil {
			log.WithError(err).Error("failed to persist seen questions")
		}
	}
	t.touch(ctx, s, now)
	return res, nil
}

// Reset forgets which questions were seen. History is kept.
func (t *Tutor) Reset(ctx context.Context, s *session.Session) error {
	s.Reset()
	if t.repos.Seen != nil {
		if err := t.repos.Seen.ClearSeen(ctx, s.ID); err != nil {
			return fmt.Errorf("clear seen questions: %w", err)
		}
	}
	t.touch(ctx, s, t.now().UTC())
	return nil
}

// ResetAll forgets seen questions and the quiz history.
func (t *Tutor) ResetAll(ctx context.Context, s *session.Session) error {
	if err := t.Reset(ctx, s); err != nil {
		return err
	}
	s.ResetAll()
	if t.repos.History != nil {
		if err := t.repos.History.ClearQuizzes(ctx, s.ID); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
	}
	return nil
}

func (t *Tutor) touch(ctx context.Context, s *session.Session, at time.Time) {
	if t.repos.Sessions == nil {
		return
	}
	if err := t.repos.Sessions.Touch(ctx, s.ID, at); err != nil {
		t.log.WithField("session", s.ID).WithError(err).Warn("failed to touch session")
	}
}

func (t *Tutor) Stats(s *session.Session) recommend.Stats {
	return t.rec.Stats(s.History())
}

func (t *Tutor) Analysis(s *session.Session) recommend.Analysis {
	return t.rec.Analyze(s.History())
}

func (t *Tutor) Availability(s *session.Session) []bank.AvailabilityCell {
	return t.bank.Availability(s.Seen())
}

// Predict returns the learner profile, or false when none is available.
func (t *Tutor) Predict(ctx context.Context, s *session.Session) (*predict.Prediction, bool) {
	return t.predictor.Predict(ctx, s.History())
}
