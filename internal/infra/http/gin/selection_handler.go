package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chalet/internal/app/commands"
	"chalet/internal/app/dto"
	selectionapp "chalet/internal/app/handlers/selection"
	"chalet/internal/app/queries"
	"chalet/internal/domain/shared/daterange"
)

type SelectionHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type clickDayRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h SelectionHandler) Current(c *gin.Context) {
	query := selectionapp.GetCurrentQuery{SessionID: sessionID(c)}
	result, err := queries.Ask[selectionapp.GetCurrentQuery, dto.SelectionState](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClickDay applies one calendar click. A refused click answers 409 with the
// unchanged selection.
func (h SelectionHandler) ClickDay(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req clickDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := daterange.Parse(req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	cmd := selectionapp.ClickDayCommand{
		CommandID:       generateCommandID(),
		SessionID:       sessionID(c),
		Day:             day,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[selectionapp.ClickDayCommand, *dto.ClickResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	if !result.Accepted {
		c.JSON(http.StatusConflict, gin.H{
			"error":  result.Message,
			"reason": result.Reason,
			"date":   result.Date,
			"state":  result.State,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h SelectionHandler) Reset(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := selectionapp.ResetCommand{CommandID: generateCommandID(), SessionID: sessionID(c)}
	result, err := commands.Dispatch[selectionapp.ResetCommand, *dto.SelectionState](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ SelectionHTTP = SelectionHandler{}
