package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type seenRepo struct {
	db *sql.DB
}

func (r *seenRepo) MarkSeen(ctx context.Context, sessionID uuid.UUID, ids []int, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	ins := builder().Insert(seenQuestionsTable.Name).
		Columns("session_id", "question_id", "seen_at")
	for _, id := range ids {
		ins.Values(sessionID.String(), id, at.UTC())
	}
	ins.OnConflict(
		entsql.ConflictColumns("session_id", "question_id"),
		entsql.DoNothing(),
	)
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("mark questions seen: %w", err)
	}
	return nil
}

func (r *seenRepo) ListSeen(ctx context.Context, sessionID uuid.UUID) ([]int, error) {
	sel := builder().Select("question_id").
		From(builder().Table(seenQuestionsTable.Name)).
		Where(entsql.EQ("session_id", sessionID.String())).
		OrderBy("question_id")
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query seen questions: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan seen question: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *seenRepo) ClearSeen(ctx context.Context, sessionID uuid.UUID) error {
	del := builder().Delete(seenQuestionsTable.Name).
		Where(entsql.EQ("session_id", sessionID.String()))
	if _, err := exec(ctx, r.db, del); err != nil {
		return fmt.Errorf("clear seen questions: %w", err)
	}
	return nil
}
