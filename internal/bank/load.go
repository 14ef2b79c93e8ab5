package bank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/adaptiq/internal/validate"
)

// RequiredColumns lists the CSV header fields a bank must provide.
var RequiredColumns = []string{
	"id", "topic", "difficulty", "question",
	"option_a", "option_b", "option_c", "option_d",
	"answer", "explanation",
}

// ErrMissingIDColumn is returned when the CSV header has no id column.
var ErrMissingIDColumn = errors.New("question bank is missing the required 'id' column")

// MissingColumnsError lists required columns absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("question bank is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// RowError describes a problem with one data row. Line is the 1-based
// line number in the file, counting the header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Record is a raw CSV data row keyed by lower-cased column name.
type Record struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a column.
func (r Record) Get(col string) string {
	return strings.TrimSpace(r.Fields[col])
}

// Table is a parsed but unvalidated CSV file.
type Table struct {
	Header  []string
	Records []Record
}

// HasColumn reports whether the header contains col.
func (t *Table) HasColumn(col string) bool {
	for _, h := range t.Header {
		if h == col {
			return true
		}
	}
	return false
}

// ReadTable reads a CSV stream without applying any bank rules.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	t := &Table{Header: header}
	line := 1
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rec := Record{Line: line, Fields: make(map[string]string, len(header))}
		for i, h := range header {
			if i < len(fields) {
				rec.Fields[h] = fields[i]
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// row is the validated shape of one question line.
type row struct {
	ID          string `csv:"id" validate:"required,number"`
	Topic       string `csv:"topic" validate:"required"`
	Difficulty  string `csv:"difficulty" validate:"required,oneof=easy medium hard"`
	Question    string `csv:"question" validate:"required"`
	OptionA     string `csv:"option_a" validate:"required"`
	OptionB     string `csv:"option_b" validate:"required"`
	OptionC     string `csv:"option_c" validate:"required"`
	OptionD     string `csv:"option_d" validate:"required"`
	Answer      string `csv:"answer" validate:"required,oneof=a b c d"`
	Explanation string `csv:"explanation"`
}

func rowFromRecord(rec Record) row {
	return row{
		ID:          rec.Get("id"),
		Topic:       rec.Get("topic"),
		Difficulty:  strings.ToLower(rec.Get("difficulty")),
		Question:    rec.Get("question"),
		OptionA:     rec.Get("option_a"),
		OptionB:     rec.Get("option_b"),
		OptionC:     rec.Get("option_c"),
		OptionD:     rec.Get("option_d"),
		Answer:      strings.ToLower(rec.Get("answer")),
		Explanation: rec.Get("explanation"),
	}
}

// checkColumns enforces the required header. A missing id column is
// reported on its own since nothing can be loaded without it.
func checkColumns(t *Table) error {
	if !t.HasColumn("id") {
		return ErrMissingIDColumn
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Questions converts a table into questions. Every invalid row is
// reported; the returned error joins one *RowError per bad line.
func Questions(t *Table, v *validate.Validator) ([]Question, error) {
	if err := checkColumns(t); err != nil {
		return nil, err
	}

	var (
		out  = make([]Question, 0, len(t.Records))
		errs []error
	)
	for _, rec := range t.Records {
		r := rowFromRecord(rec)
		if err := v.Struct(r); err != nil {
			errs = append(errs, &RowError{Line: rec.Line, Err: err})
			continue
		}
		id, err := strconv.Atoi(r.ID)
		if err != nil {
			errs = append(errs, &RowError{Line: rec.Line, Err: fmt.Errorf("id %q is not an integer", r.ID)})
			continue
		}
		out = append(out, Question{
			ID:          id,
			Topic:       r.Topic,
			Difficulty:  Difficulty(r.Difficulty),
			Text:        r.Question,
			Options:     [4]string{r.OptionA, r.OptionB, r.OptionC, r.OptionD},
			Answer:      r.Answer,
			Explanation: r.Explanation,
		})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid question rows: %w", errors.Join(errs...))
	}
	return out, nil
}

// Parse reads a bank from a CSV stream.
func Parse(r io.Reader, opts ...Option) (*Bank, error) {
	t, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	qs, err := Questions(t, validate.New())
	if err != nil {
		return nil, err
	}
	return New(qs, opts...), nil
}

// Load reads a bank from a CSV file. A missing or unreadable file is an error.
func Load(path string, opts ...Option) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()

	b, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load question bank %s: %w", path, err)
	}
	return b, nil
}
