package pricing

import (
	"errors"
	"fmt"
	"time"

	"chalet/internal/domain/shared/daterange"
	"chalet/internal/domain/shared/money"
)

var (
	ErrNegativeRate  = errors.New("pricing: rates cannot be negative")
	ErrInvalidDay    = errors.New("pricing: day does not exist in month")
	ErrCurrencyUnset = errors.New("pricing: currency must be defined")
)

// MonthKey addresses the overrides of one calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) MonthKey {
	d := daterange.DateOf(t)
	return MonthKey{Year: d.Year, Month: d.Month}
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func (k MonthKey) daysIn() int {
	return time.Date(k.Year, k.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthOverride replaces the global rates for a single month. A day entry beats
// the month weekday/weekend rate, which beats the global defaults.
type MonthOverride struct {
	Weekday *int64
	Weekend *int64
	Days    map[int]int64
}

// Config holds every nightly rate of the property.
type Config struct {
	Currency       string
	DefaultWeekday int64
	DefaultWeekend int64
	Months         map[MonthKey]MonthOverride
}

func (c Config) Validate() error {
	if c.Currency == "" {
		return ErrCurrencyUnset
	}
	if _, err := money.New(c.DefaultWeekday, c.Currency); err != nil {
		return fmt.Errorf("pricing: %w", err)
	}
	if c.DefaultWeekday < 0 || c.DefaultWeekend < 0 {
		return ErrNegativeRate
	}
	for key, override := range c.Months {
		if override.Weekday != nil && *override.Weekday < 0 {
			return fmt.Errorf("%w: %s weekday", ErrNegativeRate, key)
		}
		if override.Weekend != nil && *override.Weekend < 0 {
			return fmt.Errorf("%w: %s weekend", ErrNegativeRate, key)
		}
		last := key.daysIn()
		for day, rate := range override.Days {
			if day < 1 || day > last {
				return fmt.Errorf("%w: %s day %d", ErrInvalidDay, key, day)
			}
			if rate < 0 {
				return fmt.Errorf("%w: %s day %d", ErrNegativeRate, key, day)
			}
		}
	}
	return nil
}

// Rate is a helper for building optional month rates.
func Rate(v int64) *int64 {
	return &v
}
