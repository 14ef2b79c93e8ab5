package api

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
)

// entry is one live session. mu serializes every request that touches it.
type entry struct {
	mu      sync.Mutex
	sess    *session.Session
	quizzes map[uuid.UUID]session.Quiz
}

// registry caches sessions in memory, loading them from the store on
// first use. Open quizzes exist only here.
type registry struct {
	tutor *tutor.Tutor

	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

func newRegistry(t *tutor.Tutor) *registry {
	return &registry{tutor: t, entries: make(map[uuid.UUID]*entry)}
}

func (r *registry) create(ctx context.Context) (*entry, error) {
	s, err := r.tutor.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	e := &entry{sess: s, quizzes: make(map[uuid.UUID]session.Quiz)}
	r.mu.Lock()
	r.entries[s.ID] = e
	r.mu.Unlock()
	return e, nil
}

// with runs fn while holding the session's lock.
func (r *registry) with(ctx context.Context, id uuid.UUID, fn func(*entry) error) error {
	e, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e)
}

func (r *registry) get(ctx context.Context, id uuid.UUID) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		return e, nil
	}
	s, err := r.tutor.LoadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	e := &entry{sess: s, quizzes: make(map[uuid.UUID]session.Quiz)}
	r.entries[id] = e
	return e, nil
}
