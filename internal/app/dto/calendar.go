package dto

import (
	"time"

	"chalet/internal/domain/availability"
	"chalet/internal/domain/pricing"
	"chalet/internal/domain/shared/daterange"
)

type CalendarDay struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Price      int64  `json:"price"`
	Tier       string `json:"tier"`
	Selectable bool   `json:"selectable"`
	Reason     string `json:"reason,omitempty"`
}

type Calendar struct {
	Property string        `json:"property"`
	Currency string        `json:"currency"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	Today    string        `json:"today"`
	Horizon  string        `json:"horizon"`
	Days     []CalendarDay `json:"days"`
}

// MapCalendar describes every day of [from, to). Prices of unavailable days
// are still reported; the widget decides whether to show them.
func MapCalendar(name string, resolver pricing.Resolver, rules availability.Rules, from, to time.Time) Calendar {
	from, to = daterange.Midnight(from), daterange.Midnight(to)
	out := Calendar{
		Property: name,
		Currency: resolver.Currency(),
		From:     formatDate(from),
		To:       formatDate(to),
		Today:    formatDate(rules.Today()),
		Horizon:  formatDate(rules.Horizon()),
		Days:     make([]CalendarDay, 0, daterange.DaysBetween(from, to)),
	}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		night := resolver.Explain(d)
		reason, unavailable := rules.Check(d)
		out.Days = append(out.Days, CalendarDay{
			Date:       formatDate(d),
			Weekday:    d.Weekday().String(),
			Price:      night.Price.Amount,
			Tier:       string(night.Tier),
			Selectable: !unavailable,
			Reason:     string(reason),
		})
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(daterange.Layout)
}

func formatDates(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, formatDate(t))
	}
	return out
}
