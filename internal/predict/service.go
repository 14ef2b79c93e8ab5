package predict

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/session"
)

// Source says which predictor produced the labels.
type Source string

const (
	SourceRules Source = "rules"
	SourceModel Source = "model"
	SourceLLM   Source = "llm"
)

// Prediction is a learner profile. Probabilities always come from the
// local heads; an LLM may override the labels.
type Prediction struct {
	LearnerType     string             `json:"learner_type"`
	LearnerProbs    map[string]float64 `json:"learner_probs"`
	Engagement      string             `json:"engagement_level"`
	EngagementProbs map[string]float64 `json:"engagement_probs"`
	Source          Source             `json:"source"`
	Rationale       string             `json:"rationale,omitempty"`
	Features        Features           `json:"features"`
}

// Service produces predictions. It is safe for concurrent use.
type Service struct {
	learner    Head
	engagement Head
	source     Source
	profiler   *Profiler
	log        logrus.FieldLogger

	llmWarn sync.Once
}

type Option func(*Service)

// WithModel replaces the rule heads with a loaded model.
func WithModel(m *ModelFile) Option {
	return func(s *Service) {
		s.learner, s.engagement, s.source = m.Learner, m.Engagement, SourceModel
	}
}

// WithLLM enables refinement through p. A nil provider is ignored.
func WithLLM(p llm.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.profiler = NewProfiler(p)
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		learner:    LearnerRules{},
		engagement: EngagementRules{},
		source:     SourceRules,
		log:        logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewServiceFromPath loads the model at path when set. A missing or
// incompatible file is logged and the rules are used instead.
func NewServiceFromPath(path string, log logrus.FieldLogger, opts ...Option) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	opts = append([]Option{WithLogger(log)}, opts...)
	if path != "" {
		m, err := LoadModel(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Warn("prediction model unavailable, using rules")
		} else {
			opts = append(opts, WithModel(m))
		}
	}
	return NewService(opts...)
}

// Source reports the local predictor in use.
func (s *Service) Source() Source { return s.source }

// Predict profiles the learner. ok is false when there is no history
// to work from. LLM failures fall back to the local prediction.
func (s *Service) Predict(ctx context.Context, history []session.Summary) (*Prediction, bool) {
	if len(history) == 0 {
		return nil, false
	}

	f := FeaturesFrom(history)
	lt, lp := s.learner.Predict(f)
	en, ep := s.engagement.Predict(f)
	p := Prediction{
		LearnerType:     lt,
		LearnerProbs:    lp,
		Engagement:      en,
		EngagementProbs: ep,
		Source:          s.source,
		Features:        f,
	}

	if s.profiler != nil {
		refined, err := s.profiler.Refine(ctx, history, p)
		if err != nil {
			first := false
			s.llmWarn.Do(func() {
				first = true
				s.log.WithError(err).Warn("llm learner profile failed, using local prediction")
			})
			if !first {
				s.log.WithError(err).Debug("llm learner profile failed")
			}
		} else {
			p = refined
		}
	}
	return &p, true
}
