package repo

import (
	"context"
	"database/sql"
	"time"
)

const (
	DashboardGeographicLimit = 10
	TopActiveEpidemicsLimit  = 5
	DailyStatsLimit          = 100
	DailyEvolutionDays       = 30
)

// Operation names, used as QueryFailure.Op and as metric labels.
const (
	OpGlobalSnapshot         = "global_snapshot"
	OpTypeDistribution       = "type_distribution"
	OpGeographicDistribution = "geographic_distribution"
	OpDailyEvolution         = "daily_evolution"
	OpTopActiveEpidemics     = "top_active_epidemics"
	OpTypeStats              = "type_stats"
	OpGeographicStats        = "geographic_stats"
	OpDailyStats             = "daily_stats"
	OpLocations              = "locations"
	OpEpidemicTypes          = "epidemic_types"
	OpCountries              = "countries"
	OpEpidemic               = "epidemic"
	OpPing                   = "ping"
)

type GlobalSnapshotRow struct {
	TotalEpidemics  int64           `db:"total_epidemics"`
	ActiveEpidemics int64           `db:"active_epidemics"`
	TotalCases      int64           `db:"total_cases"`
	TotalDeaths     int64           `db:"total_deaths"`
	MortalityRate   sql.NullFloat64 `db:"mortality_rate"`
}

type TypeDistributionRow struct {
	Type          sql.NullString `db:"type"`
	EpidemicCount int64          `db:"epidemic_count"`
	Cases         int64          `db:"cases"`
	Deaths        int64          `db:"deaths"`
}

type CountryDistributionRow struct {
	Country string `db:"country"`
	Cases   int64  `db:"cases"`
	Deaths  int64  `db:"deaths"`
}

type DailyEvolutionRow struct {
	Date        time.Time `db:"date"`
	NewCases    int64     `db:"new_cases"`
	NewDeaths   int64     `db:"new_deaths"`
	ActiveCases int64     `db:"active_cases"`
}

type ActiveEpidemicRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Type        sql.NullString `db:"type"`
	Country     string         `db:"country"`
	TotalCases  int64          `db:"total_cases"`
	TotalDeaths int64          `db:"total_deaths"`
}

type TypeStatsRow struct {
	Type           sql.NullString `db:"type"`
	Count          int64          `db:"count"`
	TotalCases     int64          `db:"total_cases"`
	TotalDeaths    int64          `db:"total_deaths"`
	AvgActiveCases int64          `db:"avg_active_cases"`
}

type GeographicStatsRow struct {
	Country        string         `db:"country"`
	Region         sql.NullString `db:"region"`
	EpidemicCount  int64          `db:"epidemic_count"`
	TotalCases     int64          `db:"total_cases"`
	TotalDeaths    int64          `db:"total_deaths"`
	AvgActiveCases int64          `db:"avg_active_cases"`
}

// DailyStatRow is a daily_stats row joined with its epidemic and location.
type DailyStatRow struct {
	ID           int64          `db:"id"`
	Date         time.Time      `db:"date"`
	Cases        int64          `db:"cases"`
	Active       int64          `db:"active"`
	Deaths       int64          `db:"deaths"`
	Recovered    int64          `db:"recovered"`
	NewCases     int64          `db:"new_cases"`
	NewDeaths    int64          `db:"new_deaths"`
	NewRecovered int64          `db:"new_recovered"`
	EpidemicID   int64          `db:"epidemic_id"`
	EpidemicName string         `db:"epidemic_name"`
	EpidemicType sql.NullString `db:"epidemic_type"`
	Country      string         `db:"country"`
	Region       sql.NullString `db:"region"`
}

type LocationRow struct {
	ID      int64          `db:"id"`
	Country string         `db:"country"`
	Region  sql.NullString `db:"region"`
	IsoCode sql.NullString `db:"iso_code"`
}

type EpidemicRow struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Type      sql.NullString `db:"type"`
	StartDate sql.NullTime   `db:"start_date"`
	EndDate   sql.NullTime   `db:"end_date"`
}

// StatsRepository is the read-only aggregation query set. Every aggregate
// except DailyEvolution and DailyStats works on the latest snapshot of each
// epidemic: all of its rows dated at its most recent reporting date.
//
// Empty type and region strings are reported as NULL, so they group
// together with missing values.
type StatsRepository interface {
	GlobalSnapshot(ctx context.Context) (GlobalSnapshotRow, error)
	TypeDistribution(ctx context.Context) ([]TypeDistributionRow, error)
	GeographicDistribution(ctx context.Context, limit int) ([]CountryDistributionRow, error)
	DailyEvolution(ctx context.Context, from, to time.Time) ([]DailyEvolutionRow, error)
	TopActiveEpidemics(ctx context.Context, limit int) ([]ActiveEpidemicRow, error)
	TypeStats(ctx context.Context) ([]TypeStatsRow, error)
	GeographicStats(ctx context.Context) ([]GeographicStatsRow, error)
	DailyStats(ctx context.Context, f DailyStatsFilter) ([]DailyStatRow, error)

	Locations(ctx context.Context) ([]LocationRow, error)
	EpidemicTypes(ctx context.Context) ([]string, error)
	Countries(ctx context.Context) ([]string, error)
	// Epidemic returns ErrEpidemicNotFound when no epidemic has the id.
	Epidemic(ctx context.Context, id int64) (EpidemicRow, error)

	Ping(ctx context.Context) error
}
