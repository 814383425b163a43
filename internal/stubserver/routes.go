package stubserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agromind/internal/types"
)

// redactedHeaders are masked in request logs.
var redactedHeaders = []string{"Authorization", "Cookie"}

// MountRoutes installs the middleware chain and every route.
//
// Middleware order:
//  1. Recoverer  - outermost, so panics anywhere are caught.
//  2. RequestID  - propagates or generates X-Request-Id.
//  3. Logger     - logs method, path, status and duration.
//  4. Metrics    - counts requests by route pattern and status.
//  5. RateLimit  - only when a limiter is configured.
//  6. Compress   - gzip for clients that accept it.
func (s *Server) MountRoutes() {
	r := s.router

	r.Use(s.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(s.Logger, redactedHeaders))
	r.Use(MetricsMiddleware)
	if s.Limiter != nil {
		r.Use(RateLimitMiddleware(s.Limiter))
	}
	r.Use(Compress)

	r.Get("/", s.HandleHome)
	r.Get("/health", s.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post(types.PathDetectDisease, s.HandleDetectDisease)
	r.Post(types.PathRecommendCrop, s.HandleRecommendCrop)
	r.Get(types.PathWeatherFull, s.HandleWeatherFull)
}
