package memory

import (
	"context"
	"sync"

	domainselection "chalet/internal/domain/selection"
)

// SessionRepository keeps selections in memory for demo and single-node use.
type SessionRepository struct {
	mu    sync.RWMutex
	items map[domainselection.SessionID]domainselection.Session
}

// NewSessionRepository builds an empty repository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{items: make(map[domainselection.SessionID]domainselection.Session)}
}

// Get returns a copy of the stored session or ErrSessionNotFound.
func (r *SessionRepository) Get(ctx context.Context, id domainselection.SessionID) (*domainselection.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainselection.ErrSessionNotFound
	}
	return &domainselection.Session{ID: stored.ID, Selection: stored.Selection, UpdatedAt: stored.UpdatedAt, Version: stored.Version}, nil
}

// Save replaces the session's selection if nobody saved it since it was
// loaded. Pending events are not persisted.
func (r *SessionRepository) Save(ctx context.Context, session *domainselection.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items[session.ID].Version != session.Version {
		return domainselection.ErrConcurrentUpdate
	}
	session.Version++
	r.items[session.ID] = domainselection.Session{
		ID:        session.ID,
		Selection: session.Selection,
		UpdatedAt: session.UpdatedAt,
		Version:   session.Version,
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id domainselection.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

var _ domainselection.Repository = (*SessionRepository)(nil)
