package dto

import (
	"time"

	"chalet/internal/domain/availability"
	"chalet/internal/domain/pricing"
)

type NightPrice struct {
	Date     string `json:"date"`
	Weekend  bool   `json:"weekend"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Tier     string `json:"tier"`
}

func MapNightPrice(n pricing.NightPrice) NightPrice {
	return NightPrice{
		Date:     formatDate(n.Date),
		Weekend:  pricing.IsWeekendNight(n.Date),
		Price:    n.Price.Amount,
		Currency: n.Price.Currency,
		Tier:     string(n.Tier),
	}
}

type UnavailableDay struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type Quote struct {
	From        string           `json:"from"`
	To          string           `json:"to"`
	Nights      int              `json:"nights"`
	Total       int64            `json:"total"`
	Currency    string           `json:"currency"`
	Nightly     []NightPrice     `json:"nightly"`
	Available   bool             `json:"available"`
	Unavailable []UnavailableDay `json:"unavailable,omitempty"`
}

// MapQuote prices from..to and flags the days the guest could not pick.
func MapQuote(q pricing.Quote, rules availability.Rules) Quote {
	out := Quote{
		From:      formatDate(q.From),
		To:        formatDate(q.To),
		Nights:    q.Nights,
		Total:     q.Total.Amount,
		Currency:  q.Total.Currency,
		Nightly:   make([]NightPrice, 0, len(q.Lines)),
		Available: true,
	}
	for _, line := range q.Lines {
		out.Nightly = append(out.Nightly, MapNightPrice(line))
		if reason, bad := rules.Check(line.Date); bad {
			out.Available = false
			out.Unavailable = append(out.Unavailable, UnavailableDay{Date: formatDate(line.Date), Reason: string(reason)})
		}
	}
	return out
}

type UnavailableDates struct {
	Blocked []string `json:"blocked"`
	Booked  []string `json:"booked"`
}

func MapUnavailable(blocked, booked []time.Time) UnavailableDates {
	return UnavailableDates{Blocked: formatDates(blocked), Booked: formatDates(booked)}
}
