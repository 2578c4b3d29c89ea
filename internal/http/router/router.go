package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/rogerio-castellano/epidemic-stats/docs"
	"github.com/rogerio-castellano/epidemic-stats/internal/http/handlers"
	mw "github.com/rogerio-castellano/epidemic-stats/internal/http/middleware"
	rl "github.com/rogerio-castellano/epidemic-stats/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 30 * time.Second

type Dependencies struct {
	Server *handlers.Server
	// Limiter is optional; nil disables rate limiting.
	Limiter        *rl.Limiter
	Logger         *zap.Logger
	RequestTimeout time.Duration
}

func NewRouter(d Dependencies) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics)
	if d.Limiter != nil {
		r.Use(mw.RateLimit(d.Limiter, logger))
	}
	r.Use(chimw.Timeout(timeout))

	s := d.Server
	r.Get("/dashboard", s.GetDashboardStatsHandler)
	r.Get("/daily", s.GetDailyStatsHandler)
	r.Get("/daily/export", s.ExportDailyStatsHandler)
	r.Get("/types", s.GetTypeStatsHandler)
	r.Get("/geographic", s.GetGeographicStatsHandler)
	r.Get("/locations", s.GetLocationsHandler)
	r.Get("/filters", s.GetFilterOptionsHandler)
	r.Get("/epidemics/{id}", s.GetEpidemicHandler)

	r.Get("/health", s.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
