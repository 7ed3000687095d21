package ginserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gin "github.com/gin-gonic/gin"

	calendarapp "chalet/internal/app/handlers/calendar"
	domainselection "chalet/internal/domain/selection"
)

func TestWriteError_Statuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "window too large", err: calendarapp.ErrWindowTooLarge, want: http.StatusBadRequest},
		{name: "lost session race", err: fmt.Errorf("save: %w", domainselection.ErrConcurrentUpdate), want: http.StatusConflict},
		{name: "anything else", err: errors.New("mongo down"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			writeError(c, tt.err)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want=%d body=%s", rec.Code, tt.want, rec.Body)
			}
		})
	}
}
