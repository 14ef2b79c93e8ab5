package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Create(ctx context.Context, id uuid.UUID, startedAt time.Time) error {
	ins := builder().Insert(sessionsTable.Name).
		Columns("id", "started_at", "updated_at").
		Values(id.String(), startedAt.UTC(), startedAt.UTC())
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id uuid.UUID) (*SessionRecord, error) {
	sel := builder().Select("id", "started_at", "updated_at").
		From(builder().Table(sessionsTable.Name)).
		Where(entsql.EQ("id", id.String()))
	rec, err := r.scanOne(ctx, sel)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (r *sessionRepo) Latest(ctx context.Context) (*SessionRecord, error) {
	sel := builder().Select("id", "started_at", "updated_at").
		From(builder().Table(sessionsTable.Name)).
		OrderBy(entsql.Desc("updated_at")).
		Limit(1)
	return r.scanOne(ctx, sel)
}

func (r *sessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	upd := builder().Update(sessionsTable.Name).
		Set("updated_at", at.UTC()).
		Where(entsql.EQ("id", id.String()))
	res, err := exec(ctx, r.db, upd)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("touch session %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanOne returns nil, nil when the query matches nothing.
func (r *sessionRepo) scanOne(ctx context.Context, sel *entsql.Selector) (*SessionRecord, error) {
	query, args := sel.Query()
	var (
		rawID string
		rec   SessionRecord
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&rawID, &rec.StartedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	if rec.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("parse session id %q: %w", rawID, err)
	}
	return &rec, nil
}
