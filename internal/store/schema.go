package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventColumns are the sequence and timestamp columns every event table
// starts with, after its primary key.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

func eventIndexes(table string, cols []*schema.Column) []*schema.Index {
	return []*schema.Index{
		{Name: table + "_sequence", Columns: []*schema.Column{cols[1]}},
		{Name: table + "_timestamp", Columns: []*schema.Column{cols[2]}},
	}
}

var (
	sessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	sessionsTable = &schema.Table{
		Name:       "sessions",
		Columns:    sessionsColumns,
		PrimaryKey: []*schema.Column{sessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessions_updated_at", Columns: []*schema.Column{sessionsColumns[2]}},
		},
	}

	quizSummariesColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString, Size: 36},
		&schema.Column{Name: "topic", Type: field.TypeString},
		&schema.Column{Name: "difficulty", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeInt},
		&schema.Column{Name: "total", Type: field.TypeInt},
		&schema.Column{Name: "accuracy", Type: field.TypeFloat64},
		&schema.Column{Name: "question_ids", Type: field.TypeJSON},
		&schema.Column{Name: "answers", Type: field.TypeJSON},
	)
	quizSummariesTable = &schema.Table{
		Name:       "quiz_summaries",
		Columns:    quizSummariesColumns,
		PrimaryKey: []*schema.Column{quizSummariesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "quiz_summaries_sessions_quizzes",
			Columns:    []*schema.Column{quizSummariesColumns[3]},
			RefColumns: []*schema.Column{sessionsColumns[0]},
			OnDelete:   schema.Cascade,
		}},
		Indexes: append(eventIndexes("quiz_summaries", quizSummariesColumns),
			&schema.Index{Name: "quiz_summaries_session_id", Columns: []*schema.Column{quizSummariesColumns[3]}},
		),
	}

	seenQuestionsColumns = []*schema.Column{
		{Name: "session_id", Type: field.TypeString, Size: 36},
		{Name: "question_id", Type: field.TypeInt},
		{Name: "seen_at", Type: field.TypeTime},
	}
	seenQuestionsTable = &schema.Table{
		Name:       "seen_questions",
		Columns:    seenQuestionsColumns,
		PrimaryKey: []*schema.Column{seenQuestionsColumns[0], seenQuestionsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "seen_questions_sessions_seen",
			Columns:    []*schema.Column{seenQuestionsColumns[0]},
			RefColumns: []*schema.Column{sessionsColumns[0]},
			OnDelete:   schema.Cascade,
		}},
	}

	llmRequestEventsColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: append(eventIndexes("llm_request_events", llmRequestEventsColumns),
			&schema.Index{Name: "llm_request_events_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
		),
	}

	tables = []*schema.Table{
		sessionsTable,
		quizSummariesTable,
		seenQuestionsTable,
		llmRequestEventsTable,
	}
)

func init() {
	quizSummariesTable.ForeignKeys[0].RefTable = sessionsTable
	seenQuestionsTable.ForeignKeys[0].RefTable = sessionsTable
}
