package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"chalet/internal/app/outbox"
)

var ErrEventNotFound = errors.New("memory: outbox event not found")

type outboxEntry struct {
	event     outbox.PendingEvent
	nextRunAt time.Time
	claimedBy string
	claimedAt time.Time
	lastError string
}

const defaultClaimLease = 2 * time.Minute

// Outbox stages records until Flush and then serves them to a relay worker
// in insertion order. ClaimLease bounds how long a claimed event waits for
// MarkSent or MarkFailed before another worker may take it.
type Outbox struct {
	ClaimLease time.Duration


	mu      sync.Mutex
	staged  []outbox.EventRecord
	ready   []*outboxEntry
	byID    map[string]*outboxEntry
	sent    int
	nowFunc func() time.Time
}

func NewOutbox() *Outbox {
	return &Outbox{byID: make(map[string]*outboxEntry), nowFunc: time.Now}
}

func (o *Outbox) Add(ctx context.Context, record outbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.staged = append(o.staged, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := o.nowFunc()
	for _, rec := range o.staged {
		entry := &outboxEntry{event: outbox.PendingEvent{EventRecord: rec}, nextRunAt: now}
		o.ready = append(o.ready, entry)
		o.byID[rec.ID] = entry
	}
	o.staged = nil
	return nil
}

// Discard drops records staged since the last Flush.
func (o *Outbox) Discard(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.staged = nil
	return nil
}

// Claim hands out the oldest due event whose claim, if any, has expired.
// It returns nil when nothing is due.
func (o *Outbox) Claim(ctx context.Context, workerID string) (*outbox.PendingEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := o.nowFunc()
	lease := o.ClaimLease
	if lease <= 0 {
		lease = defaultClaimLease
	}
	for _, entry := range o.ready {
		if entry.claimedBy != "" && now.Sub(entry.claimedAt) < lease {
			continue
		}
		if entry.nextRunAt.After(now) {
			continue
		}
		entry.claimedBy = workerID
		entry.claimedAt = now
		entry.event.Attempts++
		ev := entry.event
		return &ev, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.byID[id]; !ok {
		return ErrEventNotFound
	}
	delete(o.byID, id)
	for i, entry := range o.ready {
		if entry.event.ID == id {
			o.ready = append(o.ready[:i], o.ready[i+1:]...)
			break
		}
	}
	o.sent++
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	entry, ok := o.byID[id]
	if !ok {
		return ErrEventNotFound
	}
	entry.claimedBy = ""
	entry.nextRunAt = next
	entry.lastError = errMsg
	return nil
}

// Stats reports how many events are staged, waiting and already sent.
func (o *Outbox) Stats() (staged, pending, sent int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.staged), len(o.ready), o.sent
}

var (
	_ outbox.Outbox    = (*Outbox)(nil)
	_ outbox.Relay     = (*Outbox)(nil)
	_ outbox.Discarder = (*Outbox)(nil)
)
