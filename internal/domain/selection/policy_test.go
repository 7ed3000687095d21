package selection

import (
	"errors"
	"testing"
	"time"

	"chalet/internal/domain/availability"
	"chalet/internal/domain/pricing"
	"chalet/internal/domain/shared/daterange"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var now = time.Date(2023, time.July, 1, 9, 0, 0, 0, time.UTC)

func sampleRules() availability.Rules {
	return availability.Rules{
		Blocked:     availability.DaySetOf(day(2023, time.July, 20), day(2023, time.July, 21), day(2023, time.July, 22)),
		Booked:      availability.DaySetOf(day(2023, time.July, 17), day(2023, time.July, 24), day(2023, time.July, 25)),
		HorizonDays: 180,
		Now:         func() time.Time { return now },
	}
}

func TestApply_RangeWithoutObstacles(t *testing.T) {
	rules := sampleRules()
	sel, err := Apply(rules, daterange.Selection{}, day(2023, time.July, 10))
	if err != nil {
		t.Fatalf("first click: %v", err)
	}
	sel, err = Apply(rules, sel, day(2023, time.July, 15))
	if err != nil {
		t.Fatalf("second click: %v", err)
	}
	if !sel.From.Equal(day(2023, time.July, 10)) || !sel.To.Equal(day(2023, time.July, 15)) {
		t.Fatalf("selection=%v..%v", sel.From, sel.To)
	}

	resolver := pricing.NewResolver(pricing.Config{Currency: "USD", DefaultWeekday: 30, DefaultWeekend: 50})
	if nights := daterange.NightsBetween(sel.From, sel.To) + 1; nights != 6 {
		t.Fatalf("nights=%d want=6", nights)
	}
	if total := resolver.TotalCost(sel.From, sel.To).Amount; total != 4*30+2*50 {
		t.Fatalf("total=%d want=%d", total, 4*30+2*50)
	}
}

func TestApply_Rejections(t *testing.T) {
	rules := sampleRules()
	anchored := daterange.Selection{From: day(2023, time.July, 10)}

	tests := []struct {
		name       string
		current    daterange.Selection
		click      time.Time
		wantErr    error
		wantReason availability.Reason
		wantMsg    string
	}{
		{
			name:       "blocked end day",
			current:    anchored,
			click:      day(2023, time.July, 21),
			wantErr:    ErrEndUnavailable,
			wantReason: availability.ReasonBlocked,
			wantMsg:    "The end date cannot be selected",
		},
		{
			name:       "booked day inside range",
			current:    daterange.Selection{From: day(2023, time.July, 16)},
			click:      day(2023, time.July, 19),
			wantErr:    ErrSpanUnavailable,
			wantReason: availability.ReasonBooked,
			wantMsg:    "Some days between those 2 dates cannot be selected",
		},
		{
			name:       "blocked first day",
			current:    daterange.Selection{},
			click:      day(2023, time.July, 20),
			wantErr:    ErrDayUnavailable,
			wantReason: availability.ReasonBlocked,
			wantMsg:    "This date cannot be selected",
		},
		{
			name:       "past first day after a completed range",
			current:    daterange.Selection{From: day(2023, time.July, 2), To: day(2023, time.July, 4)},
			click:      day(2023, time.June, 28),
			wantErr:    ErrDayUnavailable,
			wantReason: availability.ReasonPast,
			wantMsg:    "This date cannot be selected",
		},
		{
			name:       "earlier click swapping over a booked day",
			current:    daterange.Selection{From: day(2023, time.July, 19)},
			click:      day(2023, time.July, 12),
			wantErr:    ErrSpanUnavailable,
			wantReason: availability.ReasonBooked,
			wantMsg:    "Some days between those 2 dates cannot be selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(rules, tt.current, tt.click)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want %v", err, tt.wantErr)
			}
			var rejection *RejectionError
			if !errors.As(err, &rejection) {
				t.Fatalf("err %T is not a *RejectionError", err)
			}
			if rejection.Reason != tt.wantReason {
				t.Fatalf("reason=%s want=%s", rejection.Reason, tt.wantReason)
			}
			if rejection.Message() != tt.wantMsg {
				t.Fatalf("message=%q want=%q", rejection.Message(), tt.wantMsg)
			}
			if got != tt.current {
				t.Fatalf("selection changed to %v..%v", got.From, got.To)
			}
		})
	}
}

func TestSession_ClickKeepsStateOnRejection(t *testing.T) {
	rules := sampleRules()
	s := NewSession("s-1", now)

	if err := s.Click(rules, day(2023, time.July, 10), now); err != nil {
		t.Fatalf("first click: %v", err)
	}
	before := s.Selection
	if err := s.Click(rules, day(2023, time.July, 21), now); !errors.Is(err, ErrEndUnavailable) {
		t.Fatalf("err=%v want %v", err, ErrEndUnavailable)
	}
	if s.Selection != before {
		t.Fatalf("selection changed to %v..%v", s.Selection.From, s.Selection.To)
	}

	evs := s.PullEvents()
	if len(evs) != 2 {
		t.Fatalf("events=%d want=2", len(evs))
	}
	if evs[0].EventName() != "selection.committed" || evs[1].EventName() != "selection.rejected" {
		t.Fatalf("events=%s,%s", evs[0].EventName(), evs[1].EventName())
	}
	rejected := evs[1].(SelectionRejected)
	if rejected.Reason != availability.ReasonBlocked || rejected.AggregateID() != "s-1" {
		t.Fatalf("rejected event=%+v", rejected)
	}
	if len(s.PendingEvents()) != 0 {
		t.Fatal("PullEvents must clear pending events")
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession("s-2", now)
	s.Selection = daterange.Selection{From: day(2023, time.July, 10), To: day(2023, time.July, 12)}
	s.Reset(now.Add(time.Minute))
	if !s.Selection.IsEmpty() {
		t.Fatalf("selection=%v..%v want empty", s.Selection.From, s.Selection.To)
	}
	evs := s.PullEvents()
	if len(evs) != 1 || evs[0].EventName() != "selection.reset" {
		t.Fatalf("events=%v", evs)
	}
}
