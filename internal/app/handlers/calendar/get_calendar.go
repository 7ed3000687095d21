package calendar

import (
	"context"
	"errors"
	"time"

	"chalet/internal/app/dto"
	"chalet/internal/app/queries"
	"chalet/internal/domain/availability"
	"chalet/internal/domain/property"
	"chalet/internal/domain/shared/daterange"
)

const (
	getCalendarKey = "calendar.days"
	MaxWindowDays  = 400
)

var ErrWindowTooLarge = errors.New("calendar: window too large")

// GetCalendarQuery asks for every day of [From, To).
type GetCalendarQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtfield=From"`
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

// GetCalendarHandler renders prices and availability for a date window.
type GetCalendarHandler struct {
	Property property.Property
	Rules    availability.Rules
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	if daterange.DaysBetween(q.From, q.To) > MaxWindowDays {
		return dto.Calendar{}, ErrWindowTooLarge
	}
	return dto.MapCalendar(h.Property.Name, h.Property.Resolver(), h.Rules, q.From, q.To), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
