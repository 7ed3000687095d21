package daterange

import "time"

// Selection is an in-progress pick of two anchor days. A zero To means only the
// first day was picked; both zero means nothing is selected. When both are set
// From is never after To.
type Selection struct {
	From time.Time
	To   time.Time
}

func (s Selection) IsEmpty() bool {
	return s.From.IsZero()
}

// IsComplete reports whether both anchors are set.
func (s Selection) IsComplete() bool {
	return !s.From.IsZero() && !s.To.IsZero()
}

// LastDay is To, or From for a single-day selection.
func (s Selection) LastDay() time.Time {
	if s.To.IsZero() {
		return s.From
	}
	return s.To
}

// Stay converts the inclusive selection into the half-open range of nights,
// the last selected day included.
func (s Selection) Stay() (DateRange, error) {
	if s.IsEmpty() {
		return DateRange{}, ErrInvalidRange
	}
	return New(s.From, s.LastDay().AddDate(0, 0, 1))
}

// AddDay extends the selection with a clicked day. An empty or completed
// selection starts over at day; otherwise day becomes the other anchor and the
// two are ordered.
func AddDay(day time.Time, current Selection) Selection {
	day = Midnight(day)
	if current.From.IsZero() || !current.To.IsZero() {
		return Selection{From: day}
	}
	from := Midnight(current.From)
	if day.Before(from) {
		return Selection{From: day, To: from}
	}
	return Selection{From: from, To: day}
}

// DatesBetween lists every day from..to inclusive. A zero to yields just from.
func DatesBetween(from, to time.Time) []time.Time {
	from = Midnight(from)
	if to.IsZero() {
		return []time.Time{from}
	}
	to = Midnight(to)
	if to.Before(from) {
		return nil
	}
	out := make([]time.Time, 0, DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// NightsBetween is the calendar-day difference between from and to. Callers
// count the last night by adding one.
func NightsBetween(from, to time.Time) int {
	if to.IsZero() {
		return 0
	}
	return DaysBetween(from, to)
}
