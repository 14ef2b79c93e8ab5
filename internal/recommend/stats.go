package recommend

import (
	"sort"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
)

// TopicStats aggregates every quiz taken on one topic.
type TopicStats struct {
	Topic    string  `json:"topic"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Quizzes  int     `json:"quizzes"`
	Accuracy float64 `json:"accuracy"`
}

// DifficultyStats is the mean quiz accuracy at one difficulty.
type DifficultyStats struct {
	Difficulty  bank.Difficulty `json:"difficulty"`
	Quizzes     int             `json:"quizzes"`
	AvgAccuracy float64         `json:"avg_accuracy"`
}

// Stats is the learning summary for a whole history.
type Stats struct {
	TotalQuizzes    int               `json:"total_quizzes"`
	TotalQuestions  int               `json:"total_questions"`
	TotalCorrect    int               `json:"total_correct"`
	OverallAccuracy float64           `json:"overall_accuracy"`
	Topics          []TopicStats      `json:"topics"`
	BestTopic       string            `json:"best_topic"`
	WorstTopic      string            `json:"worst_topic"`
	Difficulties    []DifficultyStats `json:"difficulties"`
	Analysis        Analysis          `json:"analysis"`
}

// ComputeStats aggregates a history under the default policy. An empty
// history yields the zero Stats.
func ComputeStats(history []session.Summary) Stats {
	return computeStats(history, DefaultPolicy())
}

// Stats aggregates a history with the analysis run under the
// recommender's policy.
func (r *Recommender) Stats(history []session.Summary) Stats {
	return computeStats(history, r.policy)
}

func computeStats(history []session.Summary, p Policy) Stats {
	if len(history) == 0 {
		return Stats{}
	}

	st := Stats{TotalQuizzes: len(history), Analysis: analyze(history, p)}

	byTopic := make(map[string]*TopicStats)
	byDiff := make(map[bank.Difficulty][]float64)
	for _, s := range history {
		st.TotalQuestions += s.Total
		st.TotalCorrect += s.Correct

		ts, ok := byTopic[s.Topic]
		if !ok {
			ts = &TopicStats{Topic: s.Topic}
			byTopic[s.Topic] = ts
		}
		ts.Correct += s.Correct
		ts.Total += s.Total
		ts.Quizzes++

		byDiff[s.Difficulty] = append(byDiff[s.Difficulty], s.Accuracy)
	}
	if st.TotalQuestions > 0 {
		st.OverallAccuracy = float64(st.TotalCorrect) / float64(st.TotalQuestions)
	}

	for _, ts := range byTopic {
		if ts.Total > 0 {
			ts.Accuracy = float64(ts.Correct) / float64(ts.Total)
		}
		st.Topics = append(st.Topics, *ts)
	}
	sort.Slice(st.Topics, func(i, j int) bool { return st.Topics[i].Topic < st.Topics[j].Topic })

	// Topics are sorted, so strict comparisons keep the lexically first on ties.
	best, worst := st.Topics[0], st.Topics[0]
	for _, ts := range st.Topics[1:] {
		if ts.Accuracy > best.Accuracy {
			best = ts
		}
		if ts.Accuracy < worst.Accuracy {
			worst = ts
		}
	}
	st.BestTopic, st.WorstTopic = best.Topic, worst.Topic

	for _, d := range bank.AllDifficulties() {
		if scores, ok := byDiff[d]; ok {
			st.Difficulties = append(st.Difficulties, DifficultyStats{
				Difficulty:  d,
				Quizzes:     len(scores),
				AvgAccuracy: mean(scores),
			})
		}
	}
	return st
}
