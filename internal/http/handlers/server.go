package handlers

import (
	"context"

	"github.com/rogerio-castellano/epidemic-stats/internal/stats"
	"go.uber.org/zap"
)

// StatsService is the reporting façade consumed by the handlers.
type StatsService interface {
	GetDashboardStats(ctx context.Context) (stats.DashboardStats, error)
	GetDailyStats(ctx context.Context, epidemicID *int64) ([]stats.DailyStat, error)
	GetTypeStats(ctx context.Context) ([]stats.TypeStats, error)
	GetGeographicStats(ctx context.Context) ([]stats.GeographicStats, error)
	GetLocations(ctx context.Context) ([]stats.Location, error)
	GetFilterOptions(ctx context.Context) (stats.FilterOptions, error)
	GetEpidemic(ctx context.Context, id int64) (stats.EpidemicDetail, error)
	Ping(ctx context.Context) error
}

// ResponseCache stores rendered JSON responses by key.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

type Options struct {
	// Cache is optional; nil disables response caching.
	Cache         ResponseCache
	StrictFilters bool
}

type Server struct {
	service       StatsService
	cache         ResponseCache
	strictFilters bool
	logger        *zap.Logger
}

func NewServer(service StatsService, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		service:       service,
		cache:         opts.Cache,
		strictFilters: opts.StrictFilters,
		logger:        logger,
	}
}
