// Package banktest builds small deterministic question banks for tests.
package banktest

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/adaptiq/internal/bank"
)

// Answer is the correct letter of every generated question.
const Answer = "b"

// Questions returns perPair questions for each topic at each difficulty,
// with ids assigned from 1 in topic, difficulty order.
func Questions(perPair int, topics ...string) []bank.Question {
	var qs []bank.Question
	id := 1
	for _, topic := range topics {
		for _, d := range bank.AllDifficulties() {
			for i := 0; i < perPair; i++ {
				qs = append(qs, bank.Question{
					ID:          id,
					Topic:       topic,
					Difficulty:  d,
					Text:        fmt.Sprintf("%s %s question %d?", topic, d, id),
					Options:     [4]string{"opt a", "opt b", "opt c", "opt d"},
					Answer:      Answer,
					Explanation: "because",
				})
				id++
			}
		}
	}
	return qs
}

// New returns a bank over Questions with a fixed random seed.
func New(perPair int, topics ...string) *bank.Bank {
	return bank.New(Questions(perPair, topics...), bank.WithRand(rand.New(rand.NewPCG(1, 2))))
}

// Answers returns n answers, all correct when right is true and all
// wrong otherwise.
func Answers(n int, right bool) []string {
	letter := "a"
	if right {
		letter = Answer
	}
	out := make([]string, n)
	for i := range out {
		out[i] = letter
	}
	return out
}
