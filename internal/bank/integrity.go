package bank

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks integrity findings.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
)

// OffendingRow identifies a data row involved in a finding.
type OffendingRow struct {
	Line     int    `json:"line"`
	ID       string `json:"id"`
	Question string `json:"question"`
}

// Finding is one integrity problem with the rows that cause it.
type Finding struct {
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Key      string         `json:"key,omitempty"`
	Rows     []OffendingRow `json:"rows,omitempty"`
}

// IntegrityReport is the result of CheckIntegrity.
type IntegrityReport struct {
	Rows     int       `json:"rows"`
	Findings []Finding `json:"findings"`
}

// OK reports whether no critical or error findings exist. Warnings do
// not fail a report.
func (r IntegrityReport) OK() bool {
	for _, f := range r.Findings {
		if f.Severity != SeverityWarning {
			return false
		}
	}
	return true
}

// Count returns the number of findings with severity s.
func (r IntegrityReport) Count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// CheckIntegrity inspects a raw table for data-quality problems that lead
// to repeated questions: a missing id column, duplicate ids, and
// duplicate question text.
func CheckIntegrity(t *Table) IntegrityReport {
	report := IntegrityReport{Rows: len(t.Records)}

	if !t.HasColumn("id") {
		report.Findings = append(report.Findings, Finding{
			Severity: SeverityCritical,
			Message:  "missing required 'id' column",
		})
		return report
	}

	report.Findings = append(report.Findings,
		duplicates(t, "id", SeverityError, "duplicate id")...)

	if t.HasColumn("question") {
		report.Findings = append(report.Findings,
			duplicates(t, "question", SeverityWarning, "duplicate question text")...)
	}
	return report
}

// duplicates groups records by col and reports every group with more
// than one row, ordered by key.
func duplicates(t *Table, col string, sev Severity, what string) []Finding {
	groups := make(map[string][]OffendingRow)
	for _, rec := range t.Records {
		key := rec.Get(col)
		if col == "question" {
			key = strings.ToLower(key)
		}
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], OffendingRow{
			Line:     rec.Line,
			ID:       rec.Get("id"),
			Question: rec.Get("question"),
		})
	}

	keys := make([]string, 0, len(groups))
	for k, rows := range groups {
		if len(rows) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	findings := make([]Finding, 0, len(keys))
	for _, k := range keys {
		rows := groups[k]
		findings = append(findings, Finding{
			Severity: sev,
			Message:  fmt.Sprintf("%s %q on %d rows", what, k, len(rows)),
			Key:      k,
			Rows:     rows,
		})
	}
	return findings
}
