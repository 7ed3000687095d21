package pricing

import (
	"strings"
	"time"

	"chalet/internal/domain/shared/daterange"
	"chalet/internal/domain/shared/money"
)

// Tier names the configuration level a nightly rate was taken from.
type Tier string

const (
	TierDay            Tier = "day"
	TierMonthWeekend   Tier = "month_weekend"
	TierMonthWeekday   Tier = "month_weekday"
	TierDefaultWeekend Tier = "default_weekend"
	TierDefaultWeekday Tier = "default_weekday"
)

// NightPrice is the rate of the night starting on Date.
type NightPrice struct {
	Date  time.Time
	Price money.Money
	Tier  Tier
}

// IsWeekendNight reports whether the night starting on t is billed at the
// weekend rate: Friday and Saturday nights.
func IsWeekendNight(t time.Time) bool {
	switch t.Weekday() {
	case time.Friday, time.Saturday:
		return true
	default:
		return false
	}
}

// Resolver looks up nightly rates. It never fails: missing overrides fall
// through to the global defaults.
type Resolver struct {
	cfg Config
}

// NewResolver keeps the currency code upper case so every price it returns
// carries the same code.
func NewResolver(cfg Config) Resolver {
	cfg.Currency = strings.ToUpper(cfg.Currency)
	return Resolver{cfg: cfg}
}

func (r Resolver) Currency() string {
	return r.cfg.Currency
}

// Cost returns the price of the night starting on date.
func (r Resolver) Cost(date time.Time) money.Money {
	return r.Explain(date).Price
}

func (r Resolver) Explain(date time.Time) NightPrice {
	date = daterange.Midnight(date)
	amount, tier := r.lookup(date)
	return NightPrice{
		Date:  date,
		Price: money.Money{Amount: amount, Currency: r.cfg.Currency},
		Tier:  tier,
	}
}

func (r Resolver) lookup(date time.Time) (int64, Tier) {
	weekend := IsWeekendNight(date)
	if override, ok := r.cfg.Months[MonthOf(date)]; ok {
		if rate, ok := override.Days[date.Day()]; ok {
			return rate, TierDay
		}
		if weekend && override.Weekend != nil {
			return *override.Weekend, TierMonthWeekend
		}
		if !weekend && override.Weekday != nil {
			return *override.Weekday, TierMonthWeekday
		}
	}
	if weekend {
		return r.cfg.DefaultWeekend, TierDefaultWeekend
	}
	return r.cfg.DefaultWeekday, TierDefaultWeekday
}
