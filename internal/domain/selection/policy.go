package selection

import (
	"errors"
	"fmt"
	"time"

	"chalet/internal/domain/availability"
	"chalet/internal/domain/shared/daterange"
)

var (
	ErrDayUnavailable  = errors.New("selection: day cannot be selected")
	ErrEndUnavailable  = errors.New("selection: end day cannot be selected")
	ErrSpanUnavailable = errors.New("selection: range contains days that cannot be selected")
)

// Checker reports why a day is unavailable. availability.Rules implements it.
type Checker interface {
	Check(date time.Time) (availability.Reason, bool)
}

// RejectionError describes a refused click. The previous selection stays as it was.
type RejectionError struct {
	Err    error
	Date   time.Time
	Reason availability.Reason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Err, e.Date.Format(daterange.Layout), e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the guest.
func (e *RejectionError) Message() string {
	switch {
	case errors.Is(e.Err, ErrEndUnavailable):
		return "The end date cannot be selected"
	case errors.Is(e.Err, ErrSpanUnavailable):
		return "Some days between those 2 dates cannot be selected"
	default:
		return "This date cannot be selected"
	}
}

// Apply computes the selection that results from clicking day. Every day of
// the candidate range must be selectable, otherwise a *RejectionError is
// returned and current must be kept.
func Apply(rules Checker, current daterange.Selection, day time.Time) (daterange.Selection, error) {
	candidate := daterange.AddDay(day, current)

	if !candidate.IsComplete() {
		if reason, bad := rules.Check(candidate.From); bad {
			return current, &RejectionError{Err: ErrDayUnavailable, Date: candidate.From, Reason: reason}
		}
		return candidate, nil
	}

	if reason, bad := rules.Check(candidate.To); bad {
		return current, &RejectionError{Err: ErrEndUnavailable, Date: candidate.To, Reason: reason}
	}
	for _, d := range daterange.DatesBetween(candidate.From, candidate.To) {
		if reason, bad := rules.Check(d); bad {
			return current, &RejectionError{Err: ErrSpanUnavailable, Date: d, Reason: reason}
		}
	}
	return candidate, nil
}
