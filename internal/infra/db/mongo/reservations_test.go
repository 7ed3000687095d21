package mongo

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"chalet/internal/domain/shared/daterange"
)

func TestNightsOf(t *testing.T) {
	day := func(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, time.UTC) }
	docs := []reservationDocument{
		{ID: "r1", CheckIn: day(time.July, 17), CheckOut: day(time.July, 18)},
		{ID: "r2", CheckIn: day(time.July, 24), CheckOut: day(time.July, 26)},
		{ID: "r3", CheckIn: day(time.July, 25).Add(15 * time.Hour), CheckOut: day(time.July, 26).Add(10 * time.Hour)},
	}

	set, err := nightsOf(docs)
	if err != nil {
		t.Fatalf("nightsOf: %v", err)
	}
	want := []time.Time{day(time.July, 17), day(time.July, 24), day(time.July, 25)}
	if got := set.Dates(); !reflect.DeepEqual(got, want) {
		t.Fatalf("nights = %v, want %v", got, want)
	}
	if set.Contains(day(time.July, 26)) {
		t.Fatal("checkout day must stay free")
	}
}

func TestNightsOf_InvalidReservation(t *testing.T) {
	at := time.Date(2023, time.July, 10, 0, 0, 0, 0, time.UTC)
	_, err := nightsOf([]reservationDocument{{ID: "bad", CheckIn: at, CheckOut: at}})
	if !errors.Is(err, daterange.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
