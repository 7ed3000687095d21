package property

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"chalet/internal/domain/availability"
	"chalet/internal/domain/pricing"
	"chalet/internal/domain/property"
	"chalet/internal/domain/shared/daterange"
)

const (
	keyDefaultWeekday = "default_weekday"
	keyDefaultWeekend = "default_weekend"
)

var ErrMalformed = errors.New("property: malformed document")

// document mirrors the property file. Years, months and days are JSON object
// keys; months count from 0 (January) to 11 (December).
type document struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Costs    struct {
		DefaultWeekday int64                                   `json:"default_weekday"`
		DefaultWeekend int64                                   `json:"default_weekend"`
		Custom         map[string]map[string]map[string]int64 `json:"custom"`
	} `json:"costs"`
	Blocked dayTree `json:"blocked"`
	Booked  dayTree `json:"booked"`
}

// dayTree is year -> month -> days.
type dayTree map[string]map[string][]int

// Decode parses a property document. currency is used when the document
// does not name one.
func Decode(data []byte, currency string) (property.Property, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return property.Property{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Currency == "" {
		doc.Currency = currency
	}
	doc.Currency = strings.ToUpper(strings.TrimSpace(doc.Currency))

	cfg := pricing.Config{
		Currency:       doc.Currency,
		DefaultWeekday: doc.Costs.DefaultWeekday,
		DefaultWeekend: doc.Costs.DefaultWeekend,
		Months:         make(map[pricing.MonthKey]pricing.MonthOverride),
	}
	for rawYear, months := range doc.Costs.Custom {
		for rawMonth, entries := range months {
			key, err := parseMonthKey(rawYear, rawMonth)
			if err != nil {
				return property.Property{}, err
			}
			override, err := decodeOverride(key, entries)
			if err != nil {
				return property.Property{}, err
			}
			cfg.Months[key] = override
		}
	}

	blocked, err := doc.Blocked.daySet("blocked")
	if err != nil {
		return property.Property{}, err
	}
	booked, err := doc.Booked.daySet("booked")
	if err != nil {
		return property.Property{}, err
	}

	p := property.Property{Name: doc.Name, Pricing: cfg, Blocked: blocked, Booked: booked}
	if err := p.Validate(); err != nil {
		return property.Property{}, err
	}
	return p, nil
}

func decodeOverride(key pricing.MonthKey, entries map[string]int64) (pricing.MonthOverride, error) {
	override := pricing.MonthOverride{}
	for k, price := range entries {
		switch k {
		case keyDefaultWeekday:
			override.Weekday = pricing.Rate(price)
		case keyDefaultWeekend:
			override.Weekend = pricing.Rate(price)
		default:
			day, err := strconv.Atoi(k)
			if err != nil {
				return pricing.MonthOverride{}, fmt.Errorf("%w: %s has unknown key %q", ErrMalformed, key, k)
			}
			if override.Days == nil {
				override.Days = make(map[int]int64)
			}
			override.Days[day] = price
		}
	}
	return override, nil
}

func (t dayTree) daySet(section string) (availability.DaySet, error) {
	var dates []daterange.Date
	for rawYear, months := range t {
		for rawMonth, days := range months {
			key, err := parseMonthKey(rawYear, rawMonth)
			if err != nil {
				return availability.DaySet{}, fmt.Errorf("%s: %w", section, err)
			}
			last := time.Date(key.Year, key.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
			for _, day := range days {
				if day < 1 || day > last {
					return availability.DaySet{}, fmt.Errorf("%s: %w: %s day %d", section, pricing.ErrInvalidDay, key, day)
				}
				dates = append(dates, daterange.Date{Year: key.Year, Month: key.Month, Day: day})
			}
		}
	}
	return availability.NewDaySet(dates...), nil
}

func parseMonthKey(rawYear, rawMonth string) (pricing.MonthKey, error) {
	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 {
		return pricing.MonthKey{}, fmt.Errorf("%w: bad year %q", ErrMalformed, rawYear)
	}
	idx, err := strconv.Atoi(rawMonth)
	if err != nil || idx < 0 || idx > 11 {
		return pricing.MonthKey{}, fmt.Errorf("%w: bad month %q in %d", ErrMalformed, rawMonth, year)
	}
	return pricing.MonthKey{Year: year, Month: time.Month(idx + 1)}, nil
}

// Encode writes a property back into the file layout.
func Encode(p property.Property) ([]byte, error) {
	var doc document
	doc.Name = p.Name
	doc.Currency = p.Pricing.Currency
	doc.Costs.DefaultWeekday = p.Pricing.DefaultWeekday
	doc.Costs.DefaultWeekend = p.Pricing.DefaultWeekend
	if len(p.Pricing.Months) > 0 {
		doc.Costs.Custom = make(map[string]map[string]map[string]int64)
	}
	for key, override := range p.Pricing.Months {
		year, month := strconv.Itoa(key.Year), strconv.Itoa(int(key.Month)-1)
		if doc.Costs.Custom[year] == nil {
			doc.Costs.Custom[year] = make(map[string]map[string]int64)
		}
		entries := make(map[string]int64, len(override.Days)+2)
		if override.Weekday != nil {
			entries[keyDefaultWeekday] = *override.Weekday
		}
		if override.Weekend != nil {
			entries[keyDefaultWeekend] = *override.Weekend
		}
		for day, price := range override.Days {
			entries[strconv.Itoa(day)] = price
		}
		doc.Costs.Custom[year][month] = entries
	}
	doc.Blocked = treeOf(p.BlockedDates())
	doc.Booked = treeOf(p.BookedDates())
	return json.MarshalIndent(doc, "", "  ")
}

func treeOf(dates []time.Time) dayTree {
	tree := dayTree{}
	for _, t := range dates {
		d := daterange.DateOf(t)
		year, month := strconv.Itoa(d.Year), strconv.Itoa(int(d.Month)-1)
		if tree[year] == nil {
			tree[year] = make(map[string][]int)
		}
		tree[year][month] = append(tree[year][month], d.Day)
	}
	for _, months := range tree {
		for _, days := range months {
			sort.Ints(days)
		}
	}
	return tree
}
