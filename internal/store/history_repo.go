package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type historyRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *historyRepo) AppendQuiz(ctx context.Context, sessionID uuid.UUID, q QuizData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ids, err := json.Marshal(nonNil(q.QuestionIDs))
	if err != nil {
		return fmt.Errorf("marshal question ids: %w", err)
	}
	answers, err := json.Marshal(nonNil(q.Answers))
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	ts := q.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	ins := builder().Insert(quizSummariesTable.Name).
		Columns("sequence", "timestamp", "session_id", "topic", "difficulty",
			"correct", "total", "accuracy", "question_ids", "answers").
		Values(seqNum, ts.UTC(), sessionID.String(), q.Topic, q.Difficulty,
			q.Correct, q.Total, q.Accuracy, string(ids), string(answers))
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save quiz summary: %w", err)
	}
	return nil
}

func (r *historyRepo) ListQuizzes(ctx context.Context, sessionID uuid.UUID) ([]QuizData, error) {
	sel := builder().Select("sequence", "timestamp", "topic", "difficulty",
		"correct", "total", "accuracy", "question_ids", "answers").
		From(builder().Table(quizSummariesTable.Name)).
		Where(entsql.EQ("session_id", sessionID.String())).
		OrderBy("sequence")
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz summaries: %w", err)
	}
	defer rows.Close()

	var out []QuizData
	for rows.Next() {
		var (
			q            QuizData
			ids, answers string
		)
		if err := rows.Scan(&q.Sequence, &q.Timestamp, &q.Topic, &q.Difficulty,
			&q.Correct, &q.Total, &q.Accuracy, &ids, &answers); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		if err := json.Unmarshal([]byte(ids), &q.QuestionIDs); err != nil {
			return nil, fmt.Errorf("decode question ids: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &q.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *historyRepo) ClearQuizzes(ctx context.Context, sessionID uuid.UUID) error {
	del := builder().Delete(quizSummariesTable.Name).
		Where(entsql.EQ("session_id", sessionID.String()))
	if _, err := exec(ctx, r.db, del); err != nil {
		return fmt.Errorf("clear quiz summaries: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
