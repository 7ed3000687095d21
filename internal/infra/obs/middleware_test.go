package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(logs *bytes.Buffer, health HealthHandlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := Middleware{
		Logger:     slog.New(slog.NewJSONHandler(logs, nil)),
		QuietPaths: []string{"/livez"},
	}
	r := gin.New()
	r.Use(mw.RequestID(), mw.LoggerMiddleware())
	r.GET("/livez", health.Livez)
	r.GET("/readyz", health.Readyz)
	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("store down"))
		c.Status(http.StatusInternalServerError)
	})
	return r
}

func serve(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs, HealthHandlers{})

	rec := serve(r, "/echo", map[string]string{RequestIDHeader: "req-42"})
	if rec.Body.String() != "req-42" || rec.Header().Get(RequestIDHeader) != "req-42" {
		t.Fatalf("request id not propagated: body=%q header=%q", rec.Body, rec.Header().Get(RequestIDHeader))
	}

	rec = serve(r, "/echo", map[string]string{RequestIDHeader: strings.Repeat("x", 200)})
	if got := rec.Body.String(); got == "" || len(got) > maxRequestIDLen {
		t.Fatalf("oversized id must be replaced, got %q", got)
	}
}

func TestLoggerMiddleware(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs, HealthHandlers{})

	serve(r, "/livez", nil)
	if logs.Len() != 0 {
		t.Fatalf("quiet path was logged: %s", logs.String())
	}

	serve(r, "/boom", nil)
	line := logs.String()
	if !strings.Contains(line, `"level":"ERROR"`) || !strings.Contains(line, "store down") {
		t.Fatalf("unexpected log line: %s", line)
	}
}

func TestReadyz(t *testing.T) {
	var logs bytes.Buffer
	healthy := newTestRouter(&logs, HealthHandlers{Checks: []Check{
		{Name: "mongo", Probe: func(context.Context) error { return nil }},
	}})
	if rec := serve(healthy, "/readyz", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}

	failing := newTestRouter(&logs, HealthHandlers{Checks: []Check{
		{Name: "mongo", Probe: func(context.Context) error { return nil }},
		{Name: "redis", Probe: func(context.Context) error { return errors.New("connection refused") }},
	}})
	rec := serve(failing, "/readyz", nil)
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "redis") || strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("readyz = %d %s", rec.Code, rec.Body)
	}
}
