package bank

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
)

const testHeader = "id,topic,difficulty,question,option_a,option_b,option_c,option_d,answer,explanation"

// csvLine renders one bank row for fixtures.
func csvLine(id int, topic, difficulty string) string {
	return fmt.Sprintf("%d,%s,%s,%s Q%d?,opt a,opt b,opt c,opt d,b,because", id, topic, difficulty, topic, id)
}

// fixtureCSV builds a bank with `perPair` questions for every listed
// topic at every difficulty. Ids are assigned sequentially from 1.
func fixtureCSV(perPair int, topics ...string) string {
	lines := []string{testHeader}
	id := 1
	for _, topic := range topics {
		for _, d := range []string{"easy", "medium", "hard"} {
			for i := 0; i < perPair; i++ {
				lines = append(lines, csvLine(id, topic, d))
				id++
			}
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func testBank(t *testing.T, perPair int, topics ...string) *Bank {
	t.Helper()
	b, err := Parse(strings.NewReader(fixtureCSV(perPair, topics...)),
		WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return b
}
