package selection

import (
	"context"
	"errors"
	"time"

	"chalet/internal/domain/shared/daterange"
	"chalet/internal/domain/shared/events"
)

var (
	ErrSessionNotFound  = errors.New("selection: session not found")
	ErrConcurrentUpdate = errors.New("selection: session changed concurrently")
)

type SessionID string

// Session owns the selection of one browsing session. The selection is only
// ever replaced as a whole. Version is the stored revision the session was
// loaded at; zero means it has never been saved.
type Session struct {
	ID        SessionID
	Selection daterange.Selection
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

// Repository stores sessions. Save fails with ErrConcurrentUpdate when the
// stored revision no longer matches session.Version, and bumps Version on
// success.
type Repository interface {
	Get(ctx context.Context, id SessionID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id SessionID) error
}

func NewSession(id SessionID, now time.Time) *Session {
	return &Session{ID: id, UpdatedAt: now.UTC()}
}

// Click applies a day click. On rejection the selection is left untouched and
// the returned error is a *RejectionError.
func (s *Session) Click(rules Checker, day time.Time, now time.Time) error {
	next, err := Apply(rules, s.Selection, day)
	if err != nil {
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			s.Record(SelectionRejected{
				SessionID: string(s.ID),
				Day:       daterange.Midnight(day),
				Date:      rejection.Date,
				Reason:    rejection.Reason,
				Cause:     rejection.Err.Error(),
				At:        now.UTC(),
			})
		}
		return err
	}
	s.Selection = next
	s.UpdatedAt = now.UTC()
	s.Record(SelectionCommitted{SessionID: string(s.ID), From: next.From, To: next.To, At: now.UTC()})
	return nil
}

func (s *Session) Reset(now time.Time) {
	s.Selection = daterange.Selection{}
	s.UpdatedAt = now.UTC()
	s.Record(SelectionReset{SessionID: string(s.ID), At: now.UTC()})
}
