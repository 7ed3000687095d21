package availability

import (
	"context"
	"sort"
	"time"

	"chalet/internal/domain/shared/daterange"
)

// DaySet is an immutable set of calendar days.
type DaySet struct {
	days map[daterange.Date]struct{}
}

func NewDaySet(dates ...daterange.Date) DaySet {
	days := make(map[daterange.Date]struct{}, len(dates))
	for _, d := range dates {
		days[d] = struct{}{}
	}
	return DaySet{days: days}
}

// DaySetOf builds a set from time values, keeping only their calendar date.
func DaySetOf(times ...time.Time) DaySet {
	dates := make([]daterange.Date, 0, len(times))
	for _, t := range times {
		dates = append(dates, daterange.DateOf(t))
	}
	return NewDaySet(dates...)
}

func (s DaySet) Contains(t time.Time) bool {
	_, ok := s.days[daterange.DateOf(t)]
	return ok
}

func (s DaySet) Len() int {
	return len(s.days)
}

// Dates flattens the set into ascending midnight-UTC values.
func (s DaySet) Dates() []time.Time {
	out := make([]time.Time, 0, len(s.days))
	for d := range s.days {
		out = append(out, d.Time())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (s DaySet) Union(other DaySet) DaySet {
	days := make(map[daterange.Date]struct{}, len(s.days)+len(other.days))
	for d := range s.days {
		days[d] = struct{}{}
	}
	for d := range other.days {
		days[d] = struct{}{}
	}
	return DaySet{days: days}
}

// BookedSource supplies the reserved days of the property. Implementations are
// read once at startup.
type BookedSource interface {
	BookedDays(ctx context.Context) (DaySet, error)
}

// StaticBooked serves a fixed set of booked days.
type StaticBooked DaySet

func (s StaticBooked) BookedDays(context.Context) (DaySet, error) {
	return DaySet(s), nil
}

var _ BookedSource = StaticBooked{}
