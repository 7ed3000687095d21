package pricing

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleConfig() Config {
	return Config{
		Currency:       "USD",
		DefaultWeekday: 30,
		DefaultWeekend: 50,
		Months: map[MonthKey]MonthOverride{
			{Year: 2023, Month: time.August}: {
				Weekday: Rate(70),
				Weekend: Rate(170),
				Days:    map[int]int64{24: 100, 25: 100},
			},
			{Year: 2023, Month: time.September}: {
				Weekend: Rate(90),
			},
		},
	}
}

func TestResolver_Cost(t *testing.T) {
	r := NewResolver(sampleConfig())

	tests := []struct {
		name string
		date time.Time
		want int64
		tier Tier
	}{
		{name: "thursday default", date: day(2023, time.June, 1), want: 30, tier: TierDefaultWeekday},
		{name: "friday default", date: day(2023, time.June, 2), want: 50, tier: TierDefaultWeekend},
		{name: "saturday default", date: day(2023, time.June, 3), want: 50, tier: TierDefaultWeekend},
		{name: "sunday is a weekday night", date: day(2023, time.June, 4), want: 30, tier: TierDefaultWeekday},
		{name: "day override on thursday", date: day(2023, time.August, 24), want: 100, tier: TierDay},
		{name: "day override beats weekend override", date: day(2023, time.August, 25), want: 100, tier: TierDay},
		{name: "month weekend", date: day(2023, time.August, 26), want: 170, tier: TierMonthWeekend},
		{name: "month weekday", date: day(2023, time.August, 23), want: 70, tier: TierMonthWeekday},
		{name: "partial month falls back for weekdays", date: day(2023, time.September, 6), want: 30, tier: TierDefaultWeekday},
		{name: "partial month weekend", date: day(2023, time.September, 8), want: 90, tier: TierMonthWeekend},
		{name: "other year untouched", date: day(2024, time.August, 24), want: 50, tier: TierDefaultWeekend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Explain(tt.date)
			if got.Price.Amount != tt.want {
				t.Fatalf("Cost(%s)=%d want=%d", tt.date.Format("2006-01-02"), got.Price.Amount, tt.want)
			}
			if got.Tier != tt.tier {
				t.Fatalf("tier=%s want=%s", got.Tier, tt.tier)
			}
			if got.Price.Currency != "USD" {
				t.Fatalf("currency=%q want USD", got.Price.Currency)
			}
			if c := r.Cost(tt.date); c != got.Price {
				t.Fatalf("Cost=%v Explain=%v", c, got.Price)
			}
		})
	}
}

func TestResolver_CostIgnoresTimeOfDay(t *testing.T) {
	r := NewResolver(sampleConfig())
	late := time.Date(2023, time.August, 24, 23, 59, 0, 0, time.UTC)
	if got := r.Cost(late).Amount; got != 100 {
		t.Fatalf("Cost=%d want=100", got)
	}
}

func TestResolver_TotalCost(t *testing.T) {
	r := NewResolver(sampleConfig())
	from := day(2023, time.July, 10) // Monday
	to := day(2023, time.July, 15)   // Saturday

	// 4 weekday nights at 30 and Friday/Saturday at 50.
	if got := r.TotalCost(from, to).Amount; got != 220 {
		t.Fatalf("TotalCost=%d want=220", got)
	}
	if got := r.TotalCost(from, time.Time{}).Amount; got != 30 {
		t.Fatalf("single night TotalCost=%d want=30", got)
	}

	var sum int64
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		sum += r.Cost(d).Amount
	}
	if got := r.TotalCost(from, to).Amount; got != sum {
		t.Fatalf("TotalCost=%d, sum of nightly costs=%d", got, sum)
	}
}

func TestResolver_Quote(t *testing.T) {
	r := NewResolver(sampleConfig())
	q := r.Quote(day(2023, time.August, 23), day(2023, time.August, 26))

	if q.Nights != 4 {
		t.Fatalf("Nights=%d want=4", q.Nights)
	}
	if len(q.Lines) != 4 {
		t.Fatalf("lines=%d want=4", len(q.Lines))
	}
	if q.Total.Amount != 70+100+100+170 {
		t.Fatalf("Total=%d want=%d", q.Total.Amount, 70+100+100+170)
	}

	single := r.Quote(day(2023, time.August, 23), time.Time{})
	if single.Nights != 1 || single.Total.Amount != 70 || !single.To.Equal(single.From) {
		t.Fatalf("single quote = %+v", single)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := sampleConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	negative := sampleConfig()
	negative.DefaultWeekend = -1
	if err := negative.Validate(); !errors.Is(err, ErrNegativeRate) {
		t.Fatalf("err=%v want %v", err, ErrNegativeRate)
	}

	badDay := sampleConfig()
	badDay.Months[MonthKey{Year: 2023, Month: time.February}] = MonthOverride{Days: map[int]int64{29: 10}}
	if err := badDay.Validate(); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("err=%v want %v", err, ErrInvalidDay)
	}

	noCurrency := sampleConfig()
	noCurrency.Currency = ""
	if err := noCurrency.Validate(); !errors.Is(err, ErrCurrencyUnset) {
		t.Fatalf("err=%v want %v", err, ErrCurrencyUnset)
	}
}

func TestResolver_CurrencyCaseIsConsistent(t *testing.T) {
	cfg := sampleConfig()
	cfg.Currency = "eur"
	r := NewResolver(cfg)

	from, to := day(2023, time.July, 10), day(2023, time.July, 12)
	codes := map[string]string{
		"cost":     r.Cost(from).Currency,
		"explain":  r.Explain(from).Price.Currency,
		"total":    r.TotalCost(from, to).Currency,
		"quote":    r.Quote(from, to).Total.Currency,
		"currency": r.Currency(),
	}
	for name, code := range codes {
		if code != "EUR" {
			t.Errorf("%s currency=%q want EUR", name, code)
		}
	}
}
