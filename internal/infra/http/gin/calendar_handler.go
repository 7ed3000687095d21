package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"chalet/internal/app/dto"
	availabilityapp "chalet/internal/app/handlers/availability"
	calendarapp "chalet/internal/app/handlers/calendar"
	"chalet/internal/app/queries"
)

type CalendarHandler struct {
	Queries queries.Bus
}

// Days serves GET /calendar?from=YYYY-MM-DD&to=YYYY-MM-DD, to exclusive.
func (h CalendarHandler) Days(c *gin.Context) {
	from, err := dateQuery(c, "from")
	if err != nil {
		writeError(c, err)
		return
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		writeError(c, err)
		return
	}
	query := calendarapp.GetCalendarQuery{From: from, To: to}
	result, err := queries.Ask[calendarapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type AvailabilityHandler struct {
	Queries queries.Bus
}

func (h AvailabilityHandler) Unavailable(c *gin.Context) {
	result, err := queries.Ask[availabilityapp.ListUnavailableQuery, dto.UnavailableDates](c.Request.Context(), h.Queries, availabilityapp.ListUnavailableQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var (
	_ CalendarHTTP     = CalendarHandler{}
	_ AvailabilityHTTP = AvailabilityHandler{}
)
