package repo

import (
	"context"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rogerio-castellano/epidemic-stats/internal/metrics"
)

const (
	defaultQueryTimeout = 5 * time.Second
	sqlDateLayout       = "2006-01-02"
)

// latestSnapshot keeps only the rows dated at their epidemic's most recent
// reporting date. Every location reporting on that date is kept.
const latestSnapshot = `ds.date = (
		SELECT MAX(latest.date)
		FROM daily_stats latest
		WHERE latest.id_epidemic = ds.id_epidemic
	)`

const globalSnapshotQuery = `
	SELECT
		COUNT(DISTINCT e.id) AS total_epidemics,
		COUNT(DISTINCT CASE WHEN e.end_date IS NULL THEN e.id END) AS active_epidemics,
		COALESCE(SUM(ds.cases), 0)::bigint AS total_cases,
		COALESCE(SUM(ds.deaths), 0)::bigint AS total_deaths,
		ROUND(COALESCE(SUM(ds.deaths), 0)::numeric / NULLIF(SUM(ds.cases), 0) * 100, 2)::float8 AS mortality_rate
	FROM epidemic e
	JOIN daily_stats ds ON ds.id_epidemic = e.id
	WHERE ` + latestSnapshot

const typeDistributionQuery = `
	SELECT
		NULLIF(e.type, '') AS type,
		COUNT(DISTINCT e.id) AS epidemic_count,
		COALESCE(SUM(ds.cases), 0)::bigint AS cases,
		COALESCE(SUM(ds.deaths), 0)::bigint AS deaths
	FROM epidemic e
	JOIN daily_stats ds ON ds.id_epidemic = e.id
	WHERE ` + latestSnapshot + `
	GROUP BY NULLIF(e.type, '')
	ORDER BY cases DESC`

const geographicDistributionQuery = `
	SELECT
		l.country,
		COALESCE(SUM(ds.cases), 0)::bigint AS cases,
		COALESCE(SUM(ds.deaths), 0)::bigint AS deaths
	FROM daily_stats ds
	JOIN localisation l ON l.id = ds.id_loc
	WHERE ` + latestSnapshot + `
	GROUP BY l.country
	ORDER BY cases DESC
	LIMIT $1`

const dailyEvolutionQuery = `
	SELECT
		ds.date,
		COALESCE(SUM(ds.new_cases), 0)::bigint AS new_cases,
		COALESCE(SUM(ds.new_deaths), 0)::bigint AS new_deaths,
		COALESCE(SUM(ds.active), 0)::bigint AS active_cases
	FROM daily_stats ds
	WHERE ds.date >= $1::date AND ds.date <= $2::date
	GROUP BY ds.date
	ORDER BY ds.date`

const topActiveEpidemicsQuery = `
	SELECT
		e.id,
		e.name,
		NULLIF(e.type, '') AS type,
		l.country,
		COALESCE(ds.cases, 0)::bigint AS total_cases,
		COALESCE(ds.deaths, 0)::bigint AS total_deaths
	FROM epidemic e
	JOIN daily_stats ds ON ds.id_epidemic = e.id
	JOIN localisation l ON l.id = ds.id_loc
	WHERE e.end_date IS NULL
	AND ` + latestSnapshot + `
	ORDER BY total_cases DESC
	LIMIT $1`

const typeStatsQuery = `
	SELECT
		NULLIF(e.type, '') AS type,
		COUNT(DISTINCT e.id) AS count,
		COALESCE(SUM(ds.cases), 0)::bigint AS total_cases,
		COALESCE(SUM(ds.deaths), 0)::bigint AS total_deaths,
		COALESCE(ROUND(AVG(ds.active)), 0)::bigint AS avg_active_cases
	FROM epidemic e
	JOIN daily_stats ds ON ds.id_epidemic = e.id
	WHERE ` + latestSnapshot + `
	GROUP BY NULLIF(e.type, '')
	ORDER BY total_cases DESC`

const geographicStatsQuery = `
	SELECT
		l.country,
		NULLIF(l.region, '') AS region,
		COUNT(DISTINCT e.id) AS epidemic_count,
		COALESCE(SUM(ds.cases), 0)::bigint AS total_cases,
		COALESCE(SUM(ds.deaths), 0)::bigint AS total_deaths,
		COALESCE(ROUND(AVG(ds.active)), 0)::bigint AS avg_active_cases
	FROM localisation l
	JOIN daily_stats ds ON ds.id_loc = l.id
	JOIN epidemic e ON e.id = ds.id_epidemic
	WHERE ` + latestSnapshot + `
	GROUP BY l.country, NULLIF(l.region, '')
	ORDER BY total_cases DESC`

type PostgresStatsRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewPostgresStatsRepository(db *sqlx.DB, timeout time.Duration) *PostgresStatsRepository {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &PostgresStatsRepository{db: db, timeout: timeout}
}

func (r *PostgresStatsRepository) GlobalSnapshot(ctx context.Context) (GlobalSnapshotRow, error) {
	var row GlobalSnapshotRow
	err := r.run(ctx, OpGlobalSnapshot, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, globalSnapshotQuery)
	})
	return row, err
}

func (r *PostgresStatsRepository) TypeDistribution(ctx context.Context) ([]TypeDistributionRow, error) {
	var rows []TypeDistributionRow
	err := r.selectRows(ctx, OpTypeDistribution, &rows, typeDistributionQuery)
	return rows, err
}

func (r *PostgresStatsRepository) GeographicDistribution(ctx context.Context, limit int) ([]CountryDistributionRow, error) {
	var rows []CountryDistributionRow
	err := r.selectRows(ctx, OpGeographicDistribution, &rows, geographicDistributionQuery, limit)
	return rows, err
}

func (r *PostgresStatsRepository) DailyEvolution(ctx context.Context, from, to time.Time) ([]DailyEvolutionRow, error) {
	var rows []DailyEvolutionRow
	err := r.selectRows(ctx, OpDailyEvolution, &rows, dailyEvolutionQuery,
		from.Format(sqlDateLayout), to.Format(sqlDateLayout))
	return rows, err
}

func (r *PostgresStatsRepository) TopActiveEpidemics(ctx context.Context, limit int) ([]ActiveEpidemicRow, error) {
	var rows []ActiveEpidemicRow
	err := r.selectRows(ctx, OpTopActiveEpidemics, &rows, topActiveEpidemicsQuery, limit)
	return rows, err
}

func (r *PostgresStatsRepository) TypeStats(ctx context.Context) ([]TypeStatsRow, error) {
	var rows []TypeStatsRow
	err := r.selectRows(ctx, OpTypeStats, &rows, typeStatsQuery)
	return rows, err
}

func (r *PostgresStatsRepository) GeographicStats(ctx context.Context) ([]GeographicStatsRow, error) {
	var rows []GeographicStatsRow
	err := r.selectRows(ctx, OpGeographicStats, &rows, geographicStatsQuery)
	return rows, err
}

// DailyStats returns the most recent daily rows, newest first.
func (r *PostgresStatsRepository) DailyStats(ctx context.Context, f DailyStatsFilter) ([]DailyStatRow, error) {
	query, args := buildDailyStatsQuery(f)

	var rows []DailyStatRow
	err := r.selectRows(ctx, OpDailyStats, &rows, query, args...)
	return rows, err
}

func (r *PostgresStatsRepository) Locations(ctx context.Context) ([]LocationRow, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("l.id", "l.country", "NULLIF(l.region, '') AS region", "NULLIF(l.iso_code, '') AS iso_code")
	sb.From("localisation l")
	sb.OrderBy("l.country", "region", "l.id")
	query, args := sb.Build()

	var rows []LocationRow
	err := r.selectRows(ctx, OpLocations, &rows, query, args...)
	return rows, err
}

// EpidemicTypes lists the distinct non-empty epidemic types, sorted.
func (r *PostgresStatsRepository) EpidemicTypes(ctx context.Context) ([]string, error) {
	query, args := buildDistinctQuery("epidemic", "type")

	var types []string
	err := r.selectRows(ctx, OpEpidemicTypes, &types, query, args...)
	return types, err
}

// Countries lists the distinct countries of all locations, sorted.
func (r *PostgresStatsRepository) Countries(ctx context.Context) ([]string, error) {
	query, args := buildDistinctQuery("localisation", "country")

	var countries []string
	err := r.selectRows(ctx, OpCountries, &countries, query, args...)
	return countries, err
}

func (r *PostgresStatsRepository) Epidemic(ctx context.Context, id int64) (EpidemicRow, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("e.id", "e.name", "NULLIF(e.type, '') AS type", "e.start_date", "e.end_date")
	sb.From("epidemic e")
	sb.Where(sb.Equal("e.id", id))
	query, args := sb.Build()

	var rows []EpidemicRow
	if err := r.selectRows(ctx, OpEpidemic, &rows, query, args...); err != nil {
		return EpidemicRow{}, err
	}
	if len(rows) == 0 {
		return EpidemicRow{}, ErrEpidemicNotFound
	}
	return rows[0], nil
}

func (r *PostgresStatsRepository) Ping(ctx context.Context) error {
	return r.run(ctx, OpPing, r.db.PingContext)
}

func buildDailyStatsQuery(f DailyStatsFilter) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"ds.id", "ds.date",
		"COALESCE(ds.cases, 0) AS cases",
		"COALESCE(ds.active, 0) AS active",
		"COALESCE(ds.deaths, 0) AS deaths",
		"COALESCE(ds.recovered, 0) AS recovered",
		"COALESCE(ds.new_cases, 0) AS new_cases",
		"COALESCE(ds.new_deaths, 0) AS new_deaths",
		"COALESCE(ds.new_recovered, 0) AS new_recovered",
		"e.id AS epidemic_id", "e.name AS epidemic_name", "NULLIF(e.type, '') AS epidemic_type",
		"l.country", "NULLIF(l.region, '') AS region",
	)
	sb.From("daily_stats ds")
	sb.Join("epidemic e", "ds.id_epidemic = e.id")
	sb.Join("localisation l", "ds.id_loc = l.id")
	if f.EpidemicID != nil {
		sb.Where(sb.Equal("ds.id_epidemic", *f.EpidemicID))
	}
	sb.OrderBy("ds.date DESC", "ds.id DESC")
	sb.Limit(f.limit())

	return sb.Build()
}

func buildDistinctQuery(table, column string) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(column).Distinct()
	sb.From(table)
	sb.Where(sb.IsNotNull(column), sb.NotEqual(column, ""))
	sb.OrderBy(column)
	return sb.Build()
}

func (r *PostgresStatsRepository) selectRows(ctx context.Context, op string, dest any, query string, args ...any) error {
	return r.run(ctx, op, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, dest, query, args...)
	})
}

// run executes fn under the query timeout, records its latency and wraps any
// error in a QueryFailure.
func (r *PostgresStatsRepository) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues(op))
	defer timer.ObserveDuration()

	if err := fn(ctx); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues(op).Inc()
		return &QueryFailure{Op: op, Err: err}
	}
	return nil
}
