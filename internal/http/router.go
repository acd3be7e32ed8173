// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"foodiespot/internal/http/handlers"
	"foodiespot/internal/http/middleware"
	"foodiespot/internal/infra"
	"foodiespot/internal/metrics"
)

type RouterDeps struct {
	Dialogue    handlers.Dialogue
	Restaurants handlers.Restaurants
	Bookings    handlers.Bookings
	Sessions    handlers.Sessions

	// Verifier enables bearer auth on /api when non-nil.
	Verifier infra.TokenVerifier
	// Limiter is optional.
	Limiter *middleware.RateLimiter
	Metrics *metrics.Metrics
	// Gatherer backs GET /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	Version  string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logging(logger), middleware.Metrics(deps.Metrics))

	health := handlers.NewHealthHandler(deps.Version)
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(middleware.Auth(deps.Verifier))
	if deps.Limiter != nil {
		api.Use(middleware.RateLimit(deps.Limiter))
	}

	chat := handlers.NewChatHandler(deps.Dialogue)
	api.POST("/chat", chat.Chat)

	restaurants := handlers.NewRestaurantHandler(deps.Restaurants)
	api.GET("/restaurants", restaurants.List)

	bookings := handlers.NewBookingHandler(deps.Bookings)
	api.GET("/bookings/:id", bookings.Get)

	sessions := handlers.NewSessionHandler(deps.Sessions)
	api.GET("/sessions/:id", sessions.Get)
	api.DELETE("/sessions/:id", sessions.Reset)

	return r
}
