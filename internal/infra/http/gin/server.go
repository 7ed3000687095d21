package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"chalet/internal/infra/config"
	"chalet/internal/infra/obs"
)

type CalendarHTTP interface {
	Days(c *gin.Context)
}

type PricingHTTP interface {
	Night(c *gin.Context)
	Quote(c *gin.Context)
}

type AvailabilityHTTP interface {
	Unavailable(c *gin.Context)
}

type SelectionHTTP interface {
	Current(c *gin.Context)
	ClickDay(c *gin.Context)
	Reset(c *gin.Context)
}

type Handlers struct {
	Calendar     CalendarHTTP
	Pricing      PricingHTTP
	Availability AvailabilityHTTP
	Selection    SelectionHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key", SessionHeader},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
			SessionHeader,
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Calendar != nil {
		api.GET("/calendar", h.Calendar.Days)
	}
	if h.Pricing != nil {
		api.GET("/prices/:date", h.Pricing.Night)
		api.GET("/quote", h.Pricing.Quote)
	}
	if h.Availability != nil {
		api.GET("/unavailable", h.Availability.Unavailable)
	}
	if h.Selection != nil {
		sel := api.Group("/selection", SessionMiddleware())
		sel.GET("", h.Selection.Current)
		sel.POST("/days", h.Selection.ClickDay)
		sel.DELETE("", h.Selection.Reset)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
