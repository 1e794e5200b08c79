package router

import (
	"time"

	"gamerental/handlers"
	"gamerental/middleware"
	"gamerental/monitoring"
	"gamerental/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Options struct {
	// AllowedOrigins for CORS; empty or ["*"] allows any origin.
	AllowedOrigins []string
	// Limiter enables per-IP rate limiting when set.
	Limiter ratelimit.Limiter
}

// New builds the gin engine: middleware chain, /metrics and the API routes.
func New(opts Options, h *handlers.Handler) *gin.Engine {
	r := gin.New()

	// Order matters: the request id must exist before anything logs.
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	// Metrics sit outside Recovery so recovered panics are counted as 500s.
	r.Use(monitoring.PrometheusMiddleware())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter))
	}

	r.GET("/metrics", monitoring.PrometheusHandler())
	h.Register(r)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
