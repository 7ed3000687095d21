package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	domainselection "chalet/internal/domain/selection"
	"chalet/internal/domain/shared/daterange"
)

const keyPrefix = "chalet:selection:"

// Config describes how to reach redis.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient dials redis and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

type sessionDocument struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// SessionRepository stores each selection as a JSON value with a TTL, so
// abandoned sessions expire on their own.
type SessionRepository struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewSessionRepository(client goredis.UniversalClient, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Get(ctx context.Context, id domainselection.SessionID) (*domainselection.Session, error) {
	doc, err := r.load(ctx, r.client, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(id)
}

// Save writes the session under WATCH, so a concurrent writer on the same key
// makes it fail with ErrConcurrentUpdate instead of being overwritten.
func (r *SessionRepository) Save(ctx context.Context, session *domainselection.Session) error {
	key := keyPrefix + string(session.ID)
	payload, err := json.Marshal(sessionDocument{
		From:      formatDay(session.Selection.From),
		To:        formatDay(session.Selection.To),
		UpdatedAt: session.UpdatedAt,
		Version:   session.Version + 1,
	})
	if err != nil {
		return err
	}
	err = r.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := r.load(ctx, tx, session.ID)
		switch {
		case errors.Is(err, domainselection.ErrSessionNotFound):
			current = sessionDocument{}
		case err != nil:
			return err
		}
		if current.Version != session.Version {
			return domainselection.ErrConcurrentUpdate
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return domainselection.ErrConcurrentUpdate
	}
	if err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	session.Version++
	return nil
}

func (r *SessionRepository) load(ctx context.Context, c goredis.Cmdable, id domainselection.SessionID) (sessionDocument, error) {
	var doc sessionDocument
	raw, err := c.Get(ctx, keyPrefix+string(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return doc, domainselection.ErrSessionNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("redis get session: %w", err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode session %s: %w", id, err)
	}
	return doc, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id domainselection.SessionID) error {
	if err := r.client.Del(ctx, keyPrefix+string(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (d sessionDocument) toDomain(id domainselection.SessionID) (*domainselection.Session, error) {
	session := &domainselection.Session{ID: id, UpdatedAt: d.UpdatedAt, Version: d.Version}
	var err error
	if d.From != "" {
		if session.Selection.From, err = daterange.Parse(d.From); err != nil {
			return nil, err
		}
	}
	if d.To != "" {
		if session.Selection.To, err = daterange.Parse(d.To); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(daterange.Layout)
}

var _ domainselection.Repository = (*SessionRepository)(nil)
