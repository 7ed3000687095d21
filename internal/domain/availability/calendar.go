package availability

import (
	"time"

	"chalet/internal/domain/shared/daterange"
)

const DefaultHorizonDays = 180

// Reason explains why a day cannot be selected.
type Reason string

const (
	ReasonPast          Reason = "past"
	ReasonBeyondHorizon Reason = "beyond_horizon"
	ReasonBlocked       Reason = "blocked"
	ReasonBooked        Reason = "booked"
)

// Rules decide which days a guest may pick. "Today" is taken from Now in
// Location, so the past cutoff follows the property's wall clock.
type Rules struct {
	Blocked     DaySet
	Booked      DaySet
	HorizonDays int
	Location    *time.Location
	Now         func() time.Time
}

// Today is the current calendar date at the property, as midnight UTC.
func (r Rules) Today() time.Time {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	return daterange.Midnight(now().In(loc))
}

// Horizon is the first day that is too far ahead to be selected.
func (r Rules) Horizon() time.Time {
	return r.horizonFrom(r.Today())
}

func (r Rules) horizonFrom(today time.Time) time.Time {
	days := r.HorizonDays
	if days <= 0 {
		days = DefaultHorizonDays
	}
	return today.AddDate(0, 0, days)
}

// Check returns the reason date is unavailable, or false when it can be selected.
func (r Rules) Check(date time.Time) (Reason, bool) {
	date = daterange.Midnight(date)
	today := r.Today()
	switch {
	case date.Before(today):
		return ReasonPast, true
	case !date.Before(r.horizonFrom(today)):
		return ReasonBeyondHorizon, true
	case r.Blocked.Contains(date):
		return ReasonBlocked, true
	case r.Booked.Contains(date):
		return ReasonBooked, true
	}
	return "", false
}

func (r Rules) IsDaySelectable(date time.Time) bool {
	_, unavailable := r.Check(date)
	return !unavailable
}
