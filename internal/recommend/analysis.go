package recommend

import (
	"math"
	"sort"

	"github.com/abhisek/adaptiq/internal/session"
)

// Pattern is the coarse learning pattern over recent quizzes.
type Pattern string

const (
	PatternNewLearner Pattern = "new_learner"
	PatternStruggling Pattern = "struggling"
	PatternDeveloping Pattern = "developing"
	PatternAdvanced   Pattern = "advanced"
)

// Trend is the direction of recent scores.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

const (
	recentWindow   = 5
	trendThreshold = 0.1
)

// Analysis summarizes how a learner has been doing.
type Analysis struct {
	Pattern          Pattern  `json:"pattern"`
	Trend            Trend    `json:"trend"`
	StrugglingTopics []string `json:"struggling_topics"`
	RecentAvg        float64  `json:"recent_avg"`
	Consistency      float64  `json:"consistency"`
}

// Analyze derives the learning pattern from a history, oldest first,
// under the default policy.
func Analyze(history []session.Summary) Analysis {
	return analyze(history, DefaultPolicy())
}

// Analyze derives the learning pattern under the recommender's policy,
// the same view the decision tree acts on.
func (r *Recommender) Analyze(history []session.Summary) Analysis {
	return analyze(history, r.policy)
}

func analyze(history []session.Summary, p Policy) Analysis {
	if len(history) < 2 {
		return Analysis{
			Pattern:          PatternNewLearner,
			Trend:            TrendStable,
			StrugglingTopics: []string{},
			Consistency:      0.8,
		}
	}

	recent := accuracies(history[max(0, len(history)-recentWindow):])
	avg := mean(recent)

	a := Analysis{
		Trend:            trend(history, recent),
		StrugglingTopics: strugglingTopics(history, p.StrugglingTopicBelow),
		RecentAvg:        avg,
		Consistency:      clamp01(1 - stddev(recent)),
	}
	switch {
	case avg < p.StrugglingBelow:
		a.Pattern = PatternStruggling
	case avg > p.AdvancedAtOrAbove:
		a.Pattern = PatternAdvanced
	default:
		a.Pattern = PatternDeveloping
	}
	return a
}

// trend compares the newest scores with the ones just before them. With
// exactly three quizzes the baseline is whatever came earlier, or 0.5.
func trend(history []session.Summary, recent []float64) Trend {
	var delta float64
	switch {
	case len(recent) > 3:
		lo := max(0, len(recent)-5)
		delta = mean(recent[len(recent)-3:]) - mean(recent[lo:len(recent)-2])
	case len(recent) == 3:
		earlier := accuracies(history[:len(history)-len(recent)])
		if len(earlier) == 0 {
			earlier = []float64{0.5}
		}
		delta = mean(recent) - mean(earlier)
	default:
		return TrendStable
	}

	switch {
	case delta > trendThreshold:
		return TrendImproving
	case delta < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// strugglingTopics returns, sorted, every topic whose mean accuracy across
// the whole history is below the threshold.
func strugglingTopics(history []session.Summary, below float64) []string {
	out := []string{}
	for topic, scores := range topicScores(history) {
		if mean(scores) < below {
			out = append(out, topic)
		}
	}
	sort.Strings(out)
	return out
}

func topicScores(history []session.Summary) map[string][]float64 {
	scores := make(map[string][]float64)
	for _, s := range history {
		scores[s.Topic] = append(scores[s.Topic], s.Accuracy)
	}
	return scores
}

// bestTopic returns the topic with the highest mean accuracy. Ties go to
// the lexically smallest name.
func bestTopic(history []session.Summary) string {
	scores := topicScores(history)
	topics := make([]string, 0, len(scores))
	for t := range scores {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	best, bestMean := "", math.Inf(-1)
	for _, t := range topics {
		if m := mean(scores[t]); m > bestMean {
			best, bestMean = t, m
		}
	}
	return best
}

func accuracies(history []session.Summary) []float64 {
	out := make([]float64, len(history))
	for i, s := range history {
		out[i] = s.Accuracy
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
