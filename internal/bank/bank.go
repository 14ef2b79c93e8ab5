// Package bank holds the question bank and answers filter and sample
// queries over questions a learner has not yet seen.
package bank

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

type pairKey struct {
	topic      string
	difficulty Difficulty
}

// Bank is an immutable, indexed question bank. Query methods are safe for
// concurrent use.
type Bank struct {
	questions []Question
	byID      map[int]int
	byPair    map[pairKey][]int
	topics    []string

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Bank.
type Option func(*Bank)

// WithRand sets the random source used by Sample.
func WithRand(r *rand.Rand) Option {
	return func(b *Bank) { b.rng = r }
}

// New indexes questions into a Bank. When ids repeat, Get returns the
// first occurrence; all occurrences remain queryable.
func New(questions []Question, opts ...Option) *Bank {
	b := &Bank{
		questions: questions,
		byID:      make(map[int]int, len(questions)),
		byPair:    make(map[pairKey][]int),
	}

	seenTopic := make(map[string]bool)
	for i, q := range questions {
		if _, dup := b.byID[q.ID]; !dup {
			b.byID[q.ID] = i
		}
		k := pairKey{q.Topic, q.Difficulty}
		b.byPair[k] = append(b.byPair[k], i)
		if !seenTopic[q.Topic] {
			seenTopic[q.Topic] = true
			b.topics = append(b.topics, q.Topic)
		}
	}
	sort.Strings(b.topics)

	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		seed := uint64(time.Now().UnixNano())
		b.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return b
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int { return len(b.questions) }

// Topics returns the sorted unique topics.
func (b *Bank) Topics() []string {
	out := make([]string, len(b.topics))
	copy(out, b.topics)
	return out
}

// HasTopic reports whether any question belongs to topic.
func (b *Bank) HasTopic(topic string) bool {
	i := sort.SearchStrings(b.topics, topic)
	return i < len(b.topics) && b.topics[i] == topic
}

// Difficulties returns the fixed difficulty order.
func (b *Bank) Difficulties() []Difficulty { return AllDifficulties() }

// Get returns the question with id.
func (b *Bank) Get(id int) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// ByIDs returns the questions for ids in the given order, skipping
// unknown ids.
func (b *Bank) ByIDs(ids []int) []Question {
	out := make([]Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := b.Get(id); ok {
			out = append(out, q)
		}
	}
	return out
}

// Query returns every question matching topic and difficulty whose id is
// not in seen, in bank order.
func (b *Bank) Query(topic string, difficulty Difficulty, seen IDSet) []Question {
	idx := b.byPair[pairKey{topic, difficulty}]
	out := make([]Question, 0, len(idx))
	for _, i := range idx {
		if !seen.Has(b.questions[i].ID) {
			out = append(out, b.questions[i])
		}
	}
	return out
}

// AvailableCount returns the number of matching, unseen questions.
func (b *Bank) AvailableCount(topic string, difficulty Difficulty, seen IDSet) int {
	n := 0
	for _, i := range b.byPair[pairKey{topic, difficulty}] {
		if !seen.Has(b.questions[i].ID) {
			n++
		}
	}
	return n
}

// TotalCount returns the number of questions for a pair, seen or not.
func (b *Bank) TotalCount(topic string, difficulty Difficulty) int {
	return len(b.byPair[pairKey{topic, difficulty}])
}

// Sample draws min(count, available) matching unseen questions uniformly
// at random without replacement. It returns an empty slice, not an error,
// when nothing is available.
func (b *Bank) Sample(topic string, difficulty Difficulty, count int, seen IDSet) []Question {
	pool := b.Query(topic, difficulty, seen)
	if count <= 0 || len(pool) == 0 {
		return []Question{}
	}
	n := min(count, len(pool))

	b.mu.Lock()
	// Partial Fisher-Yates: the first n slots end up uniformly chosen.
	for i := 0; i < n; i++ {
		j := i + b.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	b.mu.Unlock()

	return pool[:n]
}

// AvailabilityCell summarizes one topic/difficulty pair.
type AvailabilityCell struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Available  int        `json:"available"`
	Total      int        `json:"total"`
	Percent    float64    `json:"percent"`
}

// Availability returns the topic x difficulty grid in enumeration order.
func (b *Bank) Availability(seen IDSet) []AvailabilityCell {
	var cells []AvailabilityCell
	for _, t := range b.topics {
		for _, d := range AllDifficulties() {
			total := b.TotalCount(t, d)
			avail := b.AvailableCount(t, d, seen)
			var pct float64
			if total > 0 {
				pct = float64(avail) / float64(total) * 100
			}
			cells = append(cells, AvailabilityCell{
				Topic:      t,
				Difficulty: d,
				Available:  avail,
				Total:      total,
				Percent:    pct,
			})
		}
	}
	return cells
}

// RemainingCount returns how many bank questions are not in seen.
func (b *Bank) RemainingCount(seen IDSet) int {
	n := 0
	for _, q := range b.questions {
		if !seen.Has(q.ID) {
			n++
		}
	}
	return n
}
