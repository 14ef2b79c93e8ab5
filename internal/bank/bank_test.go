package bank

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	b := testBank(t, 2, "SQL", "Python", "Algorithms")

	if b.Len() != 18 {
		t.Errorf("Len = %d, want 18", b.Len())
	}
	want := []string{"Algorithms", "Python", "SQL"}
	if got := b.Topics(); !reflect.DeepEqual(got, want) {
		t.Errorf("Topics = %v, want %v", got, want)
	}

	q, ok := b.Get(1)
	if !ok {
		t.Fatal("Get(1) not found")
	}
	if q.Answer != "b" || q.Difficulty != Easy || q.Option("B") != "opt b" {
		t.Errorf("question 1 = %+v", q)
	}
}

func TestParse_NormalizesCase(t *testing.T) {
	csv := testHeader + "\n7,SQL, Medium ,What?,w,x,y,z, C ,note\n"
	b, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	q, _ := b.Get(7)
	if q.Difficulty != Medium {
		t.Errorf("Difficulty = %q, want medium", q.Difficulty)
	}
	if q.Answer != "c" {
		t.Errorf("Answer = %q, want c", q.Answer)
	}
}

func TestParse_MissingIDColumn(t *testing.T) {
	csv := "topic,difficulty,question,option_a,option_b,option_c,option_d,answer,explanation\n" +
		"SQL,easy,Q,a,b,c,d,a,e\n"
	_, err := Parse(strings.NewReader(csv))
	if !errors.Is(err, ErrMissingIDColumn) {
		t.Fatalf("err = %v, want ErrMissingIDColumn", err)
	}
}

func TestParse_MissingColumns(t *testing.T) {
	csv := "id,topic,difficulty,question,answer\n1,SQL,easy,Q,a\n"
	_, err := Parse(strings.NewReader(csv))

	var mc *MissingColumnsError
	if !errors.As(err, &mc) {
		t.Fatalf("err = %v, want *MissingColumnsError", err)
	}
	want := []string{"option_a", "option_b", "option_c", "option_d", "explanation"}
	if !reflect.DeepEqual(mc.Columns, want) {
		t.Errorf("Columns = %v, want %v", mc.Columns, want)
	}
}

func TestParse_InvalidRowsReportLines(t *testing.T) {
	csv := testHeader + "\n" +
		csvLine(1, "SQL", "easy") + "\n" +
		"2,SQL,expert,Q,a,b,c,d,a,e\n" +
		"x3,SQL,easy,Q,a,b,c,d,e,e\n"
	_, err := Parse(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for invalid rows")
	}

	var re *RowError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want a *RowError", err)
	}
	if re.Line != 3 {
		t.Errorf("first RowError line = %d, want 3", re.Line)
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("error %q should mention line 4", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapping os.ErrNotExist", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV(1, "SQL")), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len = %d, want 3", b.Len())
	}
}

func TestQuery_ExcludesSeen(t *testing.T) {
	b := testBank(t, 4, "Python")
	// Python easy ids are 1..4.
	got := b.Query("Python", Easy, NewIDSet(2, 4))

	var ids []int
	for _, q := range got {
		ids = append(ids, q.ID)
	}
	if !reflect.DeepEqual(ids, []int{1, 3}) {
		t.Errorf("Query ids = %v, want [1 3]", ids)
	}
	if n := b.AvailableCount("Python", Easy, NewIDSet(2, 4)); n != 2 {
		t.Errorf("AvailableCount = %d, want 2", n)
	}
}

func TestQuery_UnknownPair(t *testing.T) {
	b := testBank(t, 2, "Python")
	if got := b.Query("Cobol", Easy, nil); len(got) != 0 {
		t.Errorf("Query unknown topic = %v, want empty", got)
	}
}

func TestSample_AllSeenReturnsEmpty(t *testing.T) {
	b := testBank(t, 5, "Python")
	seen := NewIDSet(1, 2, 3, 4, 5)

	got := b.Sample("Python", Easy, 5, seen)
	if got == nil {
		t.Fatal("Sample returned nil, want empty non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("Sample len = %d, want 0", len(got))
	}
}

func TestSample_DistinctUnseenAndCapped(t *testing.T) {
	b := testBank(t, 6, "Python")
	seen := NewIDSet(1)

	got := b.Sample("Python", Easy, 10, seen)
	if len(got) != 5 {
		t.Fatalf("Sample len = %d, want 5 (capped to available)", len(got))
	}
	ids := make(map[int]bool)
	for _, q := range got {
		if seen.Has(q.ID) {
			t.Errorf("sampled seen id %d", q.ID)
		}
		if ids[q.ID] {
			t.Errorf("sampled id %d twice", q.ID)
		}
		if q.Topic != "Python" || q.Difficulty != Easy {
			t.Errorf("sampled %s/%s, want Python/easy", q.Topic, q.Difficulty)
		}
		ids[q.ID] = true
	}

	if got := b.Sample("Python", Easy, 3, seen); len(got) != 3 {
		t.Errorf("Sample(3) len = %d, want 3", len(got))
	}
	if got := b.Sample("Python", Easy, 0, seen); len(got) != 0 {
		t.Errorf("Sample(0) len = %d, want 0", len(got))
	}
}

func TestSample_CoversPool(t *testing.T) {
	b := testBank(t, 4, "SQL")
	hits := make(map[int]int)
	for i := 0; i < 200; i++ {
		for _, q := range b.Sample("SQL", Hard, 1, nil) {
			hits[q.ID]++
		}
	}
	// SQL hard ids are 9..12; each should be drawn at least once.
	for id := 9; id <= 12; id++ {
		if hits[id] == 0 {
			t.Errorf("id %d never sampled in 200 draws", id)
		}
	}
}

func TestAvailableCount_Monotonic(t *testing.T) {
	b := testBank(t, 3, "Python", "SQL")
	seen := NewIDSet(1, 5)

	for id := 0; id <= b.Len()+1; id++ {
		for _, topic := range b.Topics() {
			for _, d := range AllDifficulties() {
				before := b.AvailableCount(topic, d, seen)
				grown := seen.Clone()
				grown.Add(id)
				after := b.AvailableCount(topic, d, grown)
				if after > before {
					t.Fatalf("AvailableCount(%s,%s) grew from %d to %d after adding %d",
						topic, d, before, after, id)
				}
			}
		}
	}
}

func TestAvailability_Grid(t *testing.T) {
	b := testBank(t, 2, "SQL", "Python")
	cells := b.Availability(NewIDSet(1))

	if len(cells) != 6 {
		t.Fatalf("cells = %d, want 6", len(cells))
	}
	// Enumeration order: sorted topics, then easy/medium/hard.
	first := cells[0]
	if first.Topic != "Python" || first.Difficulty != Easy {
		t.Errorf("first cell = %s/%s, want Python/easy", first.Topic, first.Difficulty)
	}
	// Python was added second, so its easy ids are 7 and 8; SQL easy holds 1.
	for _, c := range cells {
		if c.Topic == "SQL" && c.Difficulty == Easy {
			if c.Available != 1 || c.Total != 2 || c.Percent != 50 {
				t.Errorf("SQL/easy = %+v, want 1/2 50%%", c)
			}
		}
	}
	if n := b.RemainingCount(NewIDSet(1, 2)); n != 10 {
		t.Errorf("RemainingCount = %d, want 10", n)
	}
}

func TestLetterIndex(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"a", 0}, {"B", 1}, {" c ", 2}, {"d", 3}, {"e", -1}, {"", -1},
	}
	for _, tt := range tests {
		if got := LetterIndex(tt.in); got != tt.want {
			t.Errorf("LetterIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, err := ParseDifficulty(" HARD "); err != nil || d != Hard {
		t.Errorf("ParseDifficulty(HARD) = %q, %v", d, err)
	}
	if _, err := ParseDifficulty("expert"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
	if Easy.Rank() >= Medium.Rank() || Medium.Rank() >= Hard.Rank() {
		t.Error("difficulty ranks not ordered")
	}
}
