package property

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"chalet/internal/domain/pricing"
)

const sample = `{
  "name": "Alpine chalet",
  "costs": {
    "default_weekday": 30,
    "default_weekend": 50,
    "custom": {
      "2023": {
        "7": {"default_weekday": 70, "default_weekend": 170, "24": 100, "25": 100}
      }
    }
  },
  "blocked": {"2023": {"6": [20, 21, 22]}},
  "booked": {"2023": {"6": [17, 24, 25]}}
}`

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecode_Sample(t *testing.T) {
	p, err := Decode([]byte(sample), "USD")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Alpine chalet" || p.Pricing.Currency != "USD" {
		t.Fatalf("property = %+v", p)
	}

	override, ok := p.Pricing.Months[pricing.MonthKey{Year: 2023, Month: time.August}]
	if !ok {
		t.Fatalf("month index 7 must map to August, months = %v", p.Pricing.Months)
	}
	if *override.Weekday != 70 || *override.Weekend != 170 || override.Days[24] != 100 {
		t.Fatalf("override = %+v", override)
	}

	resolver := p.Resolver()
	tests := []struct {
		date time.Time
		want int64
	}{
		{day(2023, time.June, 1), 30},
		{day(2023, time.June, 2), 50},
		{day(2023, time.August, 24), 100},
		{day(2023, time.August, 23), 70},
		{day(2023, time.August, 26), 170},
	}
	for _, tt := range tests {
		if got := resolver.Cost(tt.date).Amount; got != tt.want {
			t.Errorf("Cost(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}

	wantBlocked := []time.Time{day(2023, time.July, 20), day(2023, time.July, 21), day(2023, time.July, 22)}
	if got := p.BlockedDates(); !reflect.DeepEqual(got, wantBlocked) {
		t.Fatalf("blocked = %v, want %v", got, wantBlocked)
	}
	wantBooked := []time.Time{day(2023, time.July, 17), day(2023, time.July, 24), day(2023, time.July, 25)}
	if got := p.BookedDates(); !reflect.DeepEqual(got, wantBooked) {
		t.Fatalf("booked = %v, want %v", got, wantBooked)
	}
}

func TestDecode_Sparse(t *testing.T) {
	p, err := Decode([]byte(`{"name":"x","currency":"EUR","costs":{"default_weekday":10,"default_weekend":20}}`), "USD")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Pricing.Currency != "EUR" || p.Blocked.Len() != 0 || p.Booked.Len() != 0 {
		t.Fatalf("property = %+v", p)
	}
}

func TestDecode_CurrencyIsUpperCased(t *testing.T) {
	for _, raw := range []string{
		`{"name":"x","currency":" eur ","costs":{"default_weekday":10,"default_weekend":20}}`,
		`{"name":"x","costs":{"default_weekday":10,"default_weekend":20}}`,
	} {
		p, err := Decode([]byte(raw), "eur")
		if err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if p.Pricing.Currency != "EUR" {
			t.Fatalf("currency=%q want EUR", p.Pricing.Currency)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"bad month":     `{"name":"x","blocked":{"2023":{"12":[1]}}}`,
		"bad year":      `{"name":"x","booked":{"twenty":{"1":[1]}}}`,
		"bad day":       `{"name":"x","blocked":{"2023":{"1":[30]}}}`,
		"unknown key":   `{"name":"x","costs":{"custom":{"2023":{"0":{"holiday":5}}}}}`,
		"negative rate": `{"name":"x","costs":{"default_weekday":-1}}`,
		"missing name":  `{"costs":{"default_weekday":1}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(raw), "USD"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := Decode([]byte(`{"name":"x","blocked":{"2023":{"-1":[1]}}}`), "USD"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	p, err := Decode([]byte(sample), "USD")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, err := Encode(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := Decode(data, "")
	if err != nil {
		t.Fatalf("decode encoded: %v", err)
	}
	if !reflect.DeepEqual(p.BlockedDates(), again.BlockedDates()) || !reflect.DeepEqual(p.Pricing, again.Pricing) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", p, again)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "property.json")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := Load(context.Background(), FileSource{Path: path}, "USD")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Booked.Len() != 3 {
		t.Fatalf("booked = %d", p.Booked.Len())
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), FileSource{Path: empty}, "USD"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for empty file, got %v", err)
	}
	if _, err := Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}, "USD"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
}
