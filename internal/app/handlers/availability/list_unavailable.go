package availability

import (
	"context"

	"chalet/internal/app/dto"
	"chalet/internal/app/queries"
	"chalet/internal/domain/property"
)

const listUnavailableKey = "availability.unavailable"

// ListUnavailableQuery asks for the blocked and booked days the calendar
// widget disables.
type ListUnavailableQuery struct{}

func (q ListUnavailableQuery) Key() string { return listUnavailableKey }

type ListUnavailableHandler struct {
	Property property.Property
}

func (h *ListUnavailableHandler) Handle(ctx context.Context, _ ListUnavailableQuery) (dto.UnavailableDates, error) {
	return dto.MapUnavailable(h.Property.BlockedDates(), h.Property.BookedDates()), nil
}

var _ queries.Handler[ListUnavailableQuery, dto.UnavailableDates] = (*ListUnavailableHandler)(nil)
