// Package recommend decides the topic, difficulty and size of a learner's
// next quiz from their history, and reconciles that decision with what is
// still unseen in the question bank.
package recommend

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/topicgraph"
)

// Reason tags why a recommendation was made.
type Reason string

const (
	ReasonFirstQuiz             Reason = "first_quiz"
	ReasonStrugglingSupport     Reason = "struggling_support"
	ReasonConfidenceBuilding    Reason = "confidence_building"
	ReasonDifficultyProgression Reason = "difficulty_progression"
	ReasonSkillReinforcement    Reason = "skill_reinforcement"
	ReasonDifficultyAdvancement Reason = "difficulty_advancement"
	ReasonMasteryChallenge      Reason = "mastery_challenge"
	ReasonTopicMastery          Reason = "topic_mastery"
	ReasonAvailabilityAdjusted  Reason = "availability_adjusted"
	ReasonAvailabilityFallback  Reason = "availability_fallback"
)

// Recommendation is the next quiz to serve. It is derived on demand and
// never persisted.
type Recommendation struct {
	Topic        string          `json:"topic"`
	Difficulty   bank.Difficulty `json:"difficulty"`
	NumQuestions int             `json:"num_questions"`
	Message      string          `json:"message"`
	Reason       Reason          `json:"reason"`
}

// Recommender runs the decision tree. Apart from the topic draw on the
// mastery branch, the same history always yields the same recommendation.
type Recommender struct {
	policy Policy
	graph  *topicgraph.Graph
	topics []string

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithPolicy replaces the default policy.
func WithPolicy(p Policy) Option {
	return func(r *Recommender) { r.policy = p }
}

// WithGraph replaces the default topic graph.
func WithGraph(g *topicgraph.Graph) Option {
	return func(r *Recommender) { r.graph = g }
}

// WithRand sets the random source for the mastery branch.
func WithRand(rng *rand.Rand) Option {
	return func(r *Recommender) { r.rng = rng }
}

// New creates a Recommender over the bank's topics. Graph edges that lead
// outside those topics are dropped.
func New(topics []string, opts ...Option) *Recommender {
	r := &Recommender{
		policy: DefaultPolicy(),
		graph:  topicgraph.Default(),
		topics: slices.Sorted(slices.Values(topics)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.graph = r.graph.Restrict(r.topics)
	if r.rng == nil {
		seed := uint64(time.Now().UnixNano())
		r.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return r
}

// Policy returns the policy in use.
func (r *Recommender) Policy() Policy { return r.policy }

// Topics returns the known topics, sorted.
func (r *Recommender) Topics() []string { return slices.Clone(r.topics) }

// Next recommends the quiz after the given history, oldest first. Only
// the last quiz drives the branch; earlier ones feed the struggling and
// mastery rules.
func (r *Recommender) Next(history []session.Summary) Recommendation {
	p := r.policy
	if len(history) == 0 {
		return Recommendation{
			Topic:        p.DefaultTopic,
			Difficulty:   bank.Easy,
			NumQuestions: p.FirstQuizSize,
			Message:      "Welcome! Let's start with a gentle introduction to assess your level.",
			Reason:       ReasonFirstQuiz,
		}
	}

	last := history[len(history)-1]
	switch {
	case last.Accuracy < p.StrugglingBelow:
		return r.struggling(history, last)
	case last.Accuracy < p.AdvancedAtOrAbove:
		return r.moderate(last)
	default:
		return r.advanced(history, last)
	}
}

func (r *Recommender) struggling(history []session.Summary, last session.Summary) Recommendation {
	p := r.policy

	streak := 0
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i]
		if s.Topic != last.Topic || s.Difficulty != bank.Easy || s.Accuracy >= p.StrugglingBelow {
			break
		}
		streak++
	}

	rec := Recommendation{
		Topic:      last.Topic,
		Difficulty: bank.Easy,
		Reason:     ReasonStrugglingSupport,
	}
	switch {
	case streak >= p.StreakLong:
		rec.NumQuestions = p.StreakQuizSize
		rec.Message = fmt.Sprintf("Let's take it step by step with just %d questions to build your confidence in %s.", rec.NumQuestions, last.Topic)
	case streak >= p.StreakShort:
		rec.NumQuestions = max(p.StreakFloor, last.Total-p.StreakDrop)
		rec.Message = fmt.Sprintf("Don't worry! Let's practice %s with fewer questions to reduce pressure.", last.Topic)
	default:
		rec.NumQuestions = max(p.StruggleFloor, last.Total-p.StruggleDrop)
		rec.Message = fmt.Sprintf("Let's review the fundamentals of %s. You're learning!", last.Topic)
	}

	a := analyze(history, p)
	if len(a.StrugglingTopics) > p.ConfidenceTopicsAbove && len(history) >= p.ConfidenceMinHistory {
		if best := bestTopic(history); best != "" && best != last.Topic {
			return Recommendation{
				Topic:        best,
				Difficulty:   bank.Easy,
				NumQuestions: p.ConfidenceQuizSize,
				Message:      fmt.Sprintf("Let's build confidence with %s, where you've shown good progress!", best),
				Reason:       ReasonConfidenceBuilding,
			}
		}
	}
	return rec
}

func (r *Recommender) moderate(last session.Summary) Recommendation {
	n := min(r.policy.MaxQuestions, last.Total+r.policy.ModerateIncrement)
	for _, step := range r.policy.ModerateSteps {
		if last.Total <= step.UpTo {
			n = step.Next
			break
		}
	}

	if last.Difficulty == bank.Easy {
		return Recommendation{
			Topic:        last.Topic,
			Difficulty:   bank.Medium,
			NumQuestions: n,
			Message:      fmt.Sprintf("Good progress! Ready to tackle medium-level %s questions?", last.Topic),
			Reason:       ReasonDifficultyProgression,
		}
	}
	return Recommendation{
		Topic:        last.Topic,
		Difficulty:   bank.Medium,
		NumQuestions: n,
		Message:      fmt.Sprintf("You're doing well! Let's solidify your %s knowledge with more practice.", last.Topic),
		Reason:       ReasonSkillReinforcement,
	}
}

func (r *Recommender) advanced(history []session.Summary, last session.Summary) Recommendation {
	p := r.policy
	n := min(p.MaxQuestions, last.Total+p.AdvancedIncrement)

	switch last.Difficulty {
	case bank.Easy:
		return Recommendation{
			Topic:        last.Topic,
			Difficulty:   bank.Medium,
			NumQuestions: n,
			Message:      fmt.Sprintf("Excellent! Time to challenge yourself with medium %s questions.", last.Topic),
			Reason:       ReasonDifficultyAdvancement,
		}
	case bank.Medium:
		return Recommendation{
			Topic:        last.Topic,
			Difficulty:   bank.Hard,
			NumQuestions: n,
			Message:      fmt.Sprintf("Outstanding! Ready for the ultimate %s challenge?", last.Topic),
			Reason:       ReasonMasteryChallenge,
		}
	}

	next := r.pick(r.MasteryCandidates(history, last.Topic))
	if next == "" {
		next = last.Topic
	}
	return Recommendation{
		Topic:        next,
		Difficulty:   bank.Medium,
		NumQuestions: p.MasteryQuizSize,
		Message:      fmt.Sprintf("Congratulations! You've mastered %s. Let's explore %s!", last.Topic, next),
		Reason:       ReasonTopicMastery,
	}
}

// MasteryCandidates lists the topics the mastery branch draws from after
// a hard quiz on current: its graph successors if it has any, otherwise
// the topics not yet mastered, otherwise every topic.
func (r *Recommender) MasteryCandidates(history []session.Summary, current string) []string {
	if next := r.graph.Successors(current); len(next) > 0 {
		return next
	}

	mastered := make(map[string]bool)
	for _, s := range history {
		if s.Difficulty == bank.Hard && s.Accuracy >= r.policy.AdvancedAtOrAbove {
			mastered[s.Topic] = true
		}
	}
	var open []string
	for _, t := range r.topics {
		if !mastered[t] {
			open = append(open, t)
		}
	}
	if len(open) > 0 {
		return open
	}
	return r.Topics()
}

func (r *Recommender) pick(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return candidates[r.rng.IntN(len(candidates))]
}
