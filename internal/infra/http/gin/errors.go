package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	calendarapp "chalet/internal/app/handlers/calendar"
	pricingapp "chalet/internal/app/handlers/pricing"
	domainselection "chalet/internal/domain/selection"
	"chalet/internal/domain/shared/daterange"
	"chalet/internal/infra/validation"
)

// writeError maps application errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"error": err.Error()}
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body["fields"] = verr.Fields
	case errors.Is(err, calendarapp.ErrWindowTooLarge),
		errors.Is(err, pricingapp.ErrQuoteRange),
		errors.Is(err, pricingapp.ErrQuoteTooLarge),
		errors.Is(err, daterange.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, domainselection.ErrConcurrentUpdate):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		body["error"] = "internal error"
		_ = c.Error(err)
	}
	c.JSON(status, body)
}
