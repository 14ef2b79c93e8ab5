package bank

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty is one of easy, medium, hard.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the difficulties in their fixed enumeration order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty normalizes s and returns the matching Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Rank orders difficulties: easy=0, medium=1, hard=2. Unknown values rank -1.
func (d Difficulty) Rank() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	}
	return -1
}

// Title returns the display form, e.g. "Medium".
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// OptionLetters are the answer letters in display order.
var OptionLetters = []string{"a", "b", "c", "d"}

// Question is a single multiple-choice question from the bank.
type Question struct {
	ID          int        `json:"id"`
	Topic       string     `json:"topic"`
	Difficulty  Difficulty `json:"difficulty"`
	Text        string     `json:"question"`
	Options     [4]string  `json:"options"`
	Answer      string     `json:"answer"`
	Explanation string     `json:"explanation"`
}

// Option returns the option text for an answer letter, or "" if the
// letter is not one of a..d.
func (q Question) Option(letter string) string {
	i := LetterIndex(letter)
	if i < 0 {
		return ""
	}
	return q.Options[i]
}

// LetterIndex maps "a".."d" (any case, surrounding space ignored) to 0..3.
// Anything else returns -1.
func LetterIndex(letter string) int {
	l := strings.ToLower(strings.TrimSpace(letter))
	for i, o := range OptionLetters {
		if l == o {
			return i
		}
	}
	return -1
}

// IDSet is a set of question ids.
type IDSet map[int]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set is empty.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Add inserts ids into the set.
func (s IDSet) Add(ids ...int) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Clone returns an independent copy.
func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
