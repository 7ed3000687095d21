package selection

import (
	"time"

	"chalet/internal/domain/availability"
)

type SelectionCommitted struct {
	SessionID string    `json:"session_id"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	At        time.Time `json:"at"`
}

func (e SelectionCommitted) EventName() string     { return "selection.committed" }
func (e SelectionCommitted) AggregateID() string   { return e.SessionID }
func (e SelectionCommitted) OccurredAt() time.Time { return e.At }

type SelectionRejected struct {
	SessionID string              `json:"session_id"`
	Day       time.Time           `json:"day"`
	Date      time.Time           `json:"date"`
	Reason    availability.Reason `json:"reason"`
	Cause     string              `json:"cause"`
	At        time.Time           `json:"at"`
}

func (e SelectionRejected) EventName() string     { return "selection.rejected" }
func (e SelectionRejected) AggregateID() string   { return e.SessionID }
func (e SelectionRejected) OccurredAt() time.Time { return e.At }

type SelectionReset struct {
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
}

func (e SelectionReset) EventName() string     { return "selection.reset" }
func (e SelectionReset) AggregateID() string   { return e.SessionID }
func (e SelectionReset) OccurredAt() time.Time { return e.At }
