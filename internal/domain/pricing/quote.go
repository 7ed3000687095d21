package pricing

import (
	"time"

	"chalet/internal/domain/shared/daterange"
	"chalet/internal/domain/shared/money"
)

// Quote is the cost of a stay covering every day from From to To inclusive.
type Quote struct {
	From   time.Time
	To     time.Time
	Nights int
	Lines  []NightPrice
	Total  money.Money
}

// TotalCost sums the nightly price of every day from..to inclusive. A zero to
// prices the single night of from.
func (r Resolver) TotalCost(from, to time.Time) money.Money {
	total := money.Zero(r.cfg.Currency)
	for _, day := range daterange.DatesBetween(from, to) {
		total.Amount += r.Cost(day).Amount
	}
	return total
}

func (r Resolver) Quote(from, to time.Time) Quote {
	days := daterange.DatesBetween(from, to)
	q := Quote{
		From:   daterange.Midnight(from),
		To:     daterange.Midnight(to),
		Nights: daterange.NightsBetween(from, to) + 1,
		Lines:  make([]NightPrice, 0, len(days)),
		Total:  money.Zero(r.cfg.Currency),
	}
	if to.IsZero() {
		q.To = q.From
	}
	for _, day := range days {
		line := r.Explain(day)
		q.Lines = append(q.Lines, line)
		q.Total.Amount += line.Price.Amount
	}
	return q
}
