package daterange

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddDay(t *testing.T) {
	a := day(2023, time.July, 10)
	b := day(2023, time.July, 15)

	tests := []struct {
		name    string
		day     time.Time
		current Selection
		want    Selection
	}{
		{name: "empty starts new range", day: a, current: Selection{}, want: Selection{From: a}},
		{name: "extends forward", day: b, current: Selection{From: a}, want: Selection{From: a, To: b}},
		{name: "earlier day swaps anchors", day: a, current: Selection{From: b}, want: Selection{From: a, To: b}},
		{name: "same day closes range", day: a, current: Selection{From: a}, want: Selection{From: a, To: a}},
		{name: "complete range starts over", day: b, current: Selection{From: a, To: b}, want: Selection{From: b}},
		{name: "time of day is dropped", day: b.Add(15 * time.Hour), current: Selection{From: a}, want: Selection{From: a, To: b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddDay(tt.day, tt.current)
			if !got.From.Equal(tt.want.From) || !got.To.Equal(tt.want.To) {
				t.Fatalf("AddDay()=%v..%v want %v..%v", got.From, got.To, tt.want.From, tt.want.To)
			}
		})
	}
}

func TestAddDay_OrderIndependent(t *testing.T) {
	a := day(2023, time.July, 10)
	b := day(2023, time.July, 15)

	ab := AddDay(b, AddDay(a, Selection{}))
	ba := AddDay(a, AddDay(b, Selection{}))
	if !ab.From.Equal(ba.From) || !ab.To.Equal(ba.To) {
		t.Fatalf("A then B = %v..%v, B then A = %v..%v", ab.From, ab.To, ba.From, ba.To)
	}
	if !ab.From.Equal(a) || !ab.To.Equal(b) {
		t.Fatalf("got %v..%v want %v..%v", ab.From, ab.To, a, b)
	}
}

func TestDatesBetween(t *testing.T) {
	from := day(2023, time.February, 27)
	to := day(2023, time.March, 2)

	got := DatesBetween(from, to)
	want := []time.Time{
		day(2023, time.February, 27),
		day(2023, time.February, 28),
		day(2023, time.March, 1),
		day(2023, time.March, 2),
	}
	if len(got) != len(want) {
		t.Fatalf("len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("got[%d]=%v want %v", i, got[i], want[i])
		}
	}

	single := DatesBetween(from, time.Time{})
	if len(single) != 1 || !single[0].Equal(from) {
		t.Fatalf("zero to: got %v want [%v]", single, from)
	}
	if got := DatesBetween(to, from); len(got) != 0 {
		t.Fatalf("reversed: got %d dates want 0", len(got))
	}
}

func TestNightsBetween(t *testing.T) {
	from := day(2023, time.July, 10)
	if got := NightsBetween(from, day(2023, time.July, 15)); got != 5 {
		t.Fatalf("NightsBetween=%d want=5", got)
	}
	if got := NightsBetween(from, from); got != 0 {
		t.Fatalf("same day NightsBetween=%d want=0", got)
	}
	if got := NightsBetween(from, time.Time{}); got != 0 {
		t.Fatalf("zero to NightsBetween=%d want=0", got)
	}
}

func TestSelectionStay(t *testing.T) {
	sel := Selection{From: day(2023, time.July, 10), To: day(2023, time.July, 15)}
	stay, err := sel.Stay()
	if err != nil {
		t.Fatalf("Stay() error = %v", err)
	}
	if stay.Nights() != 6 {
		t.Fatalf("Nights=%d want=6", stay.Nights())
	}
	if !stay.ContainsDate(day(2023, time.July, 15)) || stay.ContainsDate(day(2023, time.July, 16)) {
		t.Fatalf("stay %v..%v should include the last selected day only", stay.CheckIn, stay.CheckOut)
	}

	single, err := Selection{From: day(2023, time.July, 10)}.Stay()
	if err != nil || single.Nights() != 1 {
		t.Fatalf("single day stay nights=%d err=%v", single.Nights(), err)
	}
	if _, err := (Selection{}).Stay(); err != ErrInvalidRange {
		t.Fatalf("empty selection err=%v want %v", err, ErrInvalidRange)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2023-08-24")
	if err != nil || !got.Equal(day(2023, time.August, 24)) {
		t.Fatalf("Parse date = %v, %v", got, err)
	}
	got, err = Parse("2023-08-24T23:30:00-05:00")
	if err != nil || !got.Equal(day(2023, time.August, 24)) {
		t.Fatalf("Parse RFC3339 = %v, %v; calendar date of the offset must be kept", got, err)
	}
	if _, err := Parse("24/08/2023"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
}
