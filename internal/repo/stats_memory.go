package repo

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rogerio-castellano/epidemic-stats/internal/models"
)

// InMemoryStatsRepository answers the aggregation queries from seeded
// models, following the same join and latest-snapshot rules as the SQL.
type InMemoryStatsRepository struct {
	mu        sync.RWMutex
	epidemics []models.Epidemic
	locations []models.Location
	stats     []models.DailyStat
	failures  map[string]error
}

func NewInMemoryStatsRepository() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{
		epidemics: []models.Epidemic{},
		locations: []models.Location{},
		stats:     []models.DailyStat{},
		failures:  map[string]error{},
	}
}

func (r *InMemoryStatsRepository) AddEpidemic(e models.Epidemic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.epidemics = append(r.epidemics, e)
}

func (r *InMemoryStatsRepository) AddLocation(l models.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = append(r.locations, l)
}

func (r *InMemoryStatsRepository) AddDailyStat(s models.DailyStat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = append(r.stats, s)
}

// FailOn makes the given operation return a QueryFailure wrapping err.
func (r *InMemoryStatsRepository) FailOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = err
}

func (r *InMemoryStatsRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.epidemics = []models.Epidemic{}
	r.locations = []models.Location{}
	r.stats = []models.DailyStat{}
	r.failures = map[string]error{}
}

func (r *InMemoryStatsRepository) GlobalSnapshot(ctx context.Context) (GlobalSnapshotRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpGlobalSnapshot); err != nil {
		return GlobalSnapshotRow{}, err
	}

	var row GlobalSnapshotRow
	seen := map[int64]bool{}
	for _, j := range r.latestJoined(false) {
		if !seen[j.epidemic.ID] {
			seen[j.epidemic.ID] = true
			row.TotalEpidemics++
			if j.epidemic.Active() {
				row.ActiveEpidemics++
			}
		}
		row.TotalCases += j.stat.Cases
		row.TotalDeaths += j.stat.Deaths
	}
	if row.TotalCases > 0 {
		rate := math.Round(float64(row.TotalDeaths)/float64(row.TotalCases)*100*100) / 100
		row.MortalityRate = sql.NullFloat64{Float64: rate, Valid: true}
	}
	return row, nil
}

func (r *InMemoryStatsRepository) TypeDistribution(ctx context.Context) ([]TypeDistributionRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpTypeDistribution); err != nil {
		return nil, err
	}

	typeStats := r.typeStats()
	rows := make([]TypeDistributionRow, 0, len(typeStats))
	for _, t := range typeStats {
		rows = append(rows, TypeDistributionRow{
			Type:          t.Type,
			EpidemicCount: t.Count,
			Cases:         t.TotalCases,
			Deaths:        t.TotalDeaths,
		})
	}
	return rows, nil
}

func (r *InMemoryStatsRepository) GeographicDistribution(ctx context.Context, limit int) ([]CountryDistributionRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpGeographicDistribution); err != nil {
		return nil, err
	}

	var rows []CountryDistributionRow
	index := map[string]int{}
	for _, j := range r.latestJoined(true) {
		i, ok := index[j.location.Country]
		if !ok {
			i = len(rows)
			index[j.location.Country] = i
			rows = append(rows, CountryDistributionRow{Country: j.location.Country})
		}
		rows[i].Cases += j.stat.Cases
		rows[i].Deaths += j.stat.Deaths
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Cases > rows[b].Cases })
	return truncate(rows, limit), nil
}

func (r *InMemoryStatsRepository) DailyEvolution(ctx context.Context, from, to time.Time) ([]DailyEvolutionRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpDailyEvolution); err != nil {
		return nil, err
	}

	var rows []DailyEvolutionRow
	index := map[time.Time]int{}
	for _, s := range r.stats {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		i, ok := index[s.Date]
		if !ok {
			i = len(rows)
			index[s.Date] = i
			rows = append(rows, DailyEvolutionRow{Date: s.Date})
		}
		rows[i].NewCases += s.NewCases
		rows[i].NewDeaths += s.NewDeaths
		rows[i].ActiveCases += s.Active
	}

	sort.Slice(rows, func(a, b int) bool { return rows[a].Date.Before(rows[b].Date) })
	return rows, nil
}

func (r *InMemoryStatsRepository) TopActiveEpidemics(ctx context.Context, limit int) ([]ActiveEpidemicRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpTopActiveEpidemics); err != nil {
		return nil, err
	}

	var rows []ActiveEpidemicRow
	for _, j := range r.latestJoined(true) {
		if !j.epidemic.Active() {
			continue
		}
		rows = append(rows, ActiveEpidemicRow{
			ID:          j.epidemic.ID,
			Name:        j.epidemic.Name,
			Type:        nullable(j.epidemic.Type),
			Country:     j.location.Country,
			TotalCases:  j.stat.Cases,
			TotalDeaths: j.stat.Deaths,
		})
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].TotalCases > rows[b].TotalCases })
	return truncate(rows, limit), nil
}

func (r *InMemoryStatsRepository) TypeStats(ctx context.Context) ([]TypeStatsRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpTypeStats); err != nil {
		return nil, err
	}
	return r.typeStats(), nil
}

func (r *InMemoryStatsRepository) typeStats() []TypeStatsRow {
	var groups []*group
	index := map[sql.NullString]*group{}
	for _, j := range r.latestJoined(false) {
		typ := nullable(j.epidemic.Type)
		g, ok := index[typ]
		if !ok {
			g = newGroup("", typ)
			index[typ] = g
			groups = append(groups, g)
		}
		g.add(j)
	}

	rows := make([]TypeStatsRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, TypeStatsRow{
			Type:           g.label,
			Count:          int64(len(g.epidemics)),
			TotalCases:     g.cases,
			TotalDeaths:    g.deaths,
			AvgActiveCases: g.avgActive(),
		})
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].TotalCases > rows[b].TotalCases })
	return rows
}

func (r *InMemoryStatsRepository) GeographicStats(ctx context.Context) ([]GeographicStatsRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpGeographicStats); err != nil {
		return nil, err
	}

	type regionKey struct {
		country string
		region  sql.NullString
	}

	var groups []*group
	index := map[regionKey]*group{}
	for _, j := range r.latestJoined(true) {
		region := nullable(j.location.Region)
		k := regionKey{country: j.location.Country, region: region}
		g, ok := index[k]
		if !ok {
			g = newGroup(k.country, region)
			index[k] = g
			groups = append(groups, g)
		}
		g.add(j)
	}

	rows := make([]GeographicStatsRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, GeographicStatsRow{
			Country:        g.country,
			Region:         g.label,
			EpidemicCount:  int64(len(g.epidemics)),
			TotalCases:     g.cases,
			TotalDeaths:    g.deaths,
			AvgActiveCases: g.avgActive(),
		})
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].TotalCases > rows[b].TotalCases })
	return rows, nil
}

func (r *InMemoryStatsRepository) DailyStats(ctx context.Context, f DailyStatsFilter) ([]DailyStatRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpDailyStats); err != nil {
		return nil, err
	}

	var rows []DailyStatRow
	for _, j := range r.joined(r.stats, true) {
		if f.EpidemicID != nil && j.stat.EpidemicID != *f.EpidemicID {
			continue
		}
		row := DailyStatRow{
			ID:           j.stat.ID,
			Date:         j.stat.Date,
			Cases:        j.stat.Cases,
			Active:       j.stat.Active,
			Deaths:       j.stat.Deaths,
			Recovered:    j.stat.Recovered,
			NewCases:     j.stat.NewCases,
			NewDeaths:    j.stat.NewDeaths,
			NewRecovered: j.stat.NewRecovered,
			EpidemicID:   j.epidemic.ID,
			EpidemicName: j.epidemic.Name,
			EpidemicType: nullable(j.epidemic.Type),
			Country:      j.location.Country,
			Region:       nullable(j.location.Region),
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(a, b int) bool {
		if !rows[a].Date.Equal(rows[b].Date) {
			return rows[a].Date.After(rows[b].Date)
		}
		return rows[a].ID > rows[b].ID
	})
	return truncate(rows, f.limit()), nil
}

func (r *InMemoryStatsRepository) Locations(ctx context.Context) ([]LocationRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpLocations); err != nil {
		return nil, err
	}

	rows := make([]LocationRow, 0, len(r.locations))
	for _, l := range r.locations {
		rows = append(rows, LocationRow{
			ID:      l.ID,
			Country: l.Country,
			Region:  nullable(l.Region),
			IsoCode: nullable(l.IsoCode),
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Country != rows[b].Country {
			return rows[a].Country < rows[b].Country
		}
		if rows[a].Region != rows[b].Region {
			return lessNullsLast(rows[a].Region, rows[b].Region)
		}
		return rows[a].ID < rows[b].ID
	})
	return rows, nil
}

func (r *InMemoryStatsRepository) EpidemicTypes(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpEpidemicTypes); err != nil {
		return nil, err
	}

	values := make([]*string, 0, len(r.epidemics))
	for _, e := range r.epidemics {
		values = append(values, e.Type)
	}
	return distinctSorted(values), nil
}

func (r *InMemoryStatsRepository) Countries(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpCountries); err != nil {
		return nil, err
	}

	values := make([]*string, 0, len(r.locations))
	for _, l := range r.locations {
		values = append(values, &l.Country)
	}
	return distinctSorted(values), nil
}

func (r *InMemoryStatsRepository) Epidemic(ctx context.Context, id int64) (EpidemicRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failure(OpEpidemic); err != nil {
		return EpidemicRow{}, err
	}

	for _, e := range r.epidemics {
		if e.ID != id {
			continue
		}
		row := EpidemicRow{ID: e.ID, Name: e.Name, Type: nullable(e.Type)}
		if e.StartDate != nil {
			row.StartDate = sql.NullTime{Time: *e.StartDate, Valid: true}
		}
		if e.EndDate != nil {
			row.EndDate = sql.NullTime{Time: *e.EndDate, Valid: true}
		}
		return row, nil
	}
	return EpidemicRow{}, ErrEpidemicNotFound
}

func (r *InMemoryStatsRepository) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failure(OpPing)
}

// joinedStat is a daily stat with its epidemic and, when requested, its location.
type joinedStat struct {
	stat     models.DailyStat
	epidemic models.Epidemic
	location models.Location
}

// latestJoined returns the joined rows of each epidemic's latest snapshot.
func (r *InMemoryStatsRepository) latestJoined(withLocation bool) []joinedStat {
	latest := map[int64]time.Time{}
	for _, s := range r.stats {
		if d, ok := latest[s.EpidemicID]; !ok || s.Date.After(d) {
			latest[s.EpidemicID] = s.Date
		}
	}

	var snapshot []models.DailyStat
	for _, s := range r.stats {
		if s.Date.Equal(latest[s.EpidemicID]) {
			snapshot = append(snapshot, s)
		}
	}
	return r.joined(snapshot, withLocation)
}

// joined drops rows whose epidemic (or location) is unknown, like an inner join.
func (r *InMemoryStatsRepository) joined(stats []models.DailyStat, withLocation bool) []joinedStat {
	epidemics := make(map[int64]models.Epidemic, len(r.epidemics))
	for _, e := range r.epidemics {
		epidemics[e.ID] = e
	}
	locations := make(map[int64]models.Location, len(r.locations))
	for _, l := range r.locations {
		locations[l.ID] = l
	}

	out := make([]joinedStat, 0, len(stats))
	for _, s := range stats {
		e, ok := epidemics[s.EpidemicID]
		if !ok {
			continue
		}
		l, ok := locations[s.LocationID]
		if withLocation && !ok {
			continue
		}
		out = append(out, joinedStat{stat: s, epidemic: e, location: l})
	}
	return out
}

func (r *InMemoryStatsRepository) failure(op string) error {
	if err, ok := r.failures[op]; ok {
		return &QueryFailure{Op: op, Err: err}
	}
	return nil
}

// group accumulates snapshot rows by country and label, where label is a
// region or an epidemic type.
type group struct {
	country   string
	label     sql.NullString
	epidemics map[int64]bool
	cases     int64
	deaths    int64
	active    int64
	rows      int64
}

func newGroup(country string, label sql.NullString) *group {
	return &group{country: country, label: label, epidemics: map[int64]bool{}}
}

func (g *group) add(j joinedStat) {
	g.epidemics[j.epidemic.ID] = true
	g.cases += j.stat.Cases
	g.deaths += j.stat.Deaths
	g.active += j.stat.Active
	g.rows++
}

func (g *group) avgActive() int64 {
	if g.rows == 0 {
		return 0
	}
	return int64(math.Round(float64(g.active) / float64(g.rows)))
}

// nullable maps nil and the empty string to NULL, like NULLIF(col, '').
func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// lessNullsLast orders like PostgreSQL's ascending sort, NULLs last.
func lessNullsLast(a, b sql.NullString) bool {
	if a.Valid != b.Valid {
		return a.Valid
	}
	return a.String < b.String
}

func distinctSorted(values []*string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range values {
		if v == nil || *v == "" || seen[*v] {
			continue
		}
		seen[*v] = true
		out = append(out, *v)
	}
	sort.Strings(out)
	return out
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
