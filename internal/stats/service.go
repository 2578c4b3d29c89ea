// Package stats is the reporting façade: it runs the aggregation queries and
// shapes their rows into the API response objects.
package stats

import (
	"context"
	"time"

	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo   repo.StatsRepository
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used to place the daily evolution window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(r repo.StatsRepository, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{repo: r, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboardStats runs the five dashboard queries concurrently. Any failure
// fails the whole snapshot; partial results are never returned.
func (s *Service) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var (
		global    repo.GlobalSnapshotRow
		types     []repo.TypeDistributionRow
		countries []repo.CountryDistributionRow
		daily     []repo.DailyEvolutionRow
		active    []repo.ActiveEpidemicRow
	)

	from, to := s.evolutionWindow()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		global, err = s.repo.GlobalSnapshot(ctx)
		return err
	})
	g.Go(func() (err error) {
		types, err = s.repo.TypeDistribution(ctx)
		return err
	})
	g.Go(func() (err error) {
		countries, err = s.repo.GeographicDistribution(ctx, repo.DashboardGeographicLimit)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.repo.DailyEvolution(ctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		active, err = s.repo.TopActiveEpidemics(ctx, repo.TopActiveEpidemicsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}

	s.logger.Debug("dashboard stats computed",
		zap.Int64("epidemics", global.TotalEpidemics),
		zap.Int("days", len(daily)),
	)

	return DashboardStats{
		GlobalStats:            mapGlobalStats(global),
		TypeDistribution:       mapTypeDistribution(types),
		GeographicDistribution: mapCountryDistribution(countries),
		DailyEvolution:         mapDailyEvolution(daily),
		TopActiveEpidemics:     mapActiveEpidemics(active),
	}, nil
}

// GetDailyStats lists the most recent daily rows. A nil epidemicID lists
// rows of every epidemic.
func (s *Service) GetDailyStats(ctx context.Context, epidemicID *int64) ([]DailyStat, error) {
	rows, err := s.repo.DailyStats(ctx, repo.DailyStatsFilter{
		EpidemicID: epidemicID,
		Limit:      repo.DailyStatsLimit,
	})
	if err != nil {
		return nil, err
	}
	return mapDailyStats(rows), nil
}

func (s *Service) GetTypeStats(ctx context.Context) ([]TypeStats, error) {
	rows, err := s.repo.TypeStats(ctx)
	if err != nil {
		return nil, err
	}
	return mapTypeStats(rows), nil
}

func (s *Service) GetGeographicStats(ctx context.Context) ([]GeographicStats, error) {
	rows, err := s.repo.GeographicStats(ctx)
	if err != nil {
		return nil, err
	}
	return mapGeographicStats(rows), nil
}

func (s *Service) GetLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.repo.Locations(ctx)
	if err != nil {
		return nil, err
	}
	return mapLocations(rows), nil
}

// GetFilterOptions returns the distinct countries and epidemic types. Both
// lists are empty, never defaulted, when the store holds no data.
func (s *Service) GetFilterOptions(ctx context.Context) (FilterOptions, error) {
	var countries, types []string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		countries, err = s.repo.Countries(ctx)
		return err
	})
	g.Go(func() (err error) {
		types, err = s.repo.EpidemicTypes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return FilterOptions{}, err
	}

	return FilterOptions{Countries: nonNil(countries), Types: nonNil(types)}, nil
}

// GetEpidemic returns one epidemic, or repo.ErrEpidemicNotFound.
func (s *Service) GetEpidemic(ctx context.Context, id int64) (EpidemicDetail, error) {
	row, err := s.repo.Epidemic(ctx, id)
	if err != nil {
		return EpidemicDetail{}, err
	}
	return mapEpidemic(row), nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// evolutionWindow returns [today-30d, today] in UTC calendar days.
func (s *Service) evolutionWindow() (time.Time, time.Time) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -repo.DailyEvolutionDays), today
}
