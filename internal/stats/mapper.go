package stats

import (
	"database/sql"
	"time"

	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
)

const DateLayout = "2006-01-02"

// The mappers below reshape flat rows into response objects. They never
// round or otherwise alter the values computed by the store, and always
// return non-nil slices so empty lists encode as [].

func mapGlobalStats(row repo.GlobalSnapshotRow) GlobalStats {
	return GlobalStats{
		TotalEpidemics:  row.TotalEpidemics,
		ActiveEpidemics: row.ActiveEpidemics,
		TotalCases:      row.TotalCases,
		TotalDeaths:     row.TotalDeaths,
		MortalityRate:   nullableFloat(row.MortalityRate),
	}
}

func mapTypeDistribution(rows []repo.TypeDistributionRow) []TypeDistribution {
	out := make([]TypeDistribution, 0, len(rows))
	for _, r := range rows {
		out = append(out, TypeDistribution{
			Type:          nullableString(r.Type),
			EpidemicCount: r.EpidemicCount,
			Cases:         r.Cases,
			Deaths:        r.Deaths,
		})
	}
	return out
}

func mapCountryDistribution(rows []repo.CountryDistributionRow) []CountryDistribution {
	out := make([]CountryDistribution, 0, len(rows))
	for _, r := range rows {
		out = append(out, CountryDistribution{
			Country: r.Country,
			Cases:   r.Cases,
			Deaths:  r.Deaths,
		})
	}
	return out
}

func mapDailyEvolution(rows []repo.DailyEvolutionRow) []DailyEvolution {
	out := make([]DailyEvolution, 0, len(rows))
	for _, r := range rows {
		out = append(out, DailyEvolution{
			Date:        formatDate(r.Date),
			NewCases:    r.NewCases,
			NewDeaths:   r.NewDeaths,
			ActiveCases: r.ActiveCases,
		})
	}
	return out
}

func mapActiveEpidemics(rows []repo.ActiveEpidemicRow) []ActiveEpidemic {
	out := make([]ActiveEpidemic, 0, len(rows))
	for _, r := range rows {
		out = append(out, ActiveEpidemic{
			ID:          r.ID,
			Name:        r.Name,
			Type:        nullableString(r.Type),
			Country:     r.Country,
			TotalCases:  r.TotalCases,
			TotalDeaths: r.TotalDeaths,
		})
	}
	return out
}

func mapDailyStats(rows []repo.DailyStatRow) []DailyStat {
	out := make([]DailyStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, DailyStat{
			ID:           r.ID,
			Date:         formatDate(r.Date),
			Cases:        r.Cases,
			Active:       r.Active,
			Deaths:       r.Deaths,
			Recovered:    r.Recovered,
			NewCases:     r.NewCases,
			NewDeaths:    r.NewDeaths,
			NewRecovered: r.NewRecovered,
			Epidemic: EpidemicRef{
				ID:   r.EpidemicID,
				Name: r.EpidemicName,
				Type: nullableString(r.EpidemicType),
			},
			Location: LocationRef{
				Country: r.Country,
				Region:  nullableString(r.Region),
			},
		})
	}
	return out
}

func mapTypeStats(rows []repo.TypeStatsRow) []TypeStats {
	out := make([]TypeStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, TypeStats{
			Type:           nullableString(r.Type),
			Count:          r.Count,
			TotalCases:     r.TotalCases,
			TotalDeaths:    r.TotalDeaths,
			AvgActiveCases: r.AvgActiveCases,
		})
	}
	return out
}

func mapGeographicStats(rows []repo.GeographicStatsRow) []GeographicStats {
	out := make([]GeographicStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, GeographicStats{
			Country:        r.Country,
			Region:         nullableString(r.Region),
			EpidemicCount:  r.EpidemicCount,
			TotalCases:     r.TotalCases,
			TotalDeaths:    r.TotalDeaths,
			AvgActiveCases: r.AvgActiveCases,
		})
	}
	return out
}

func mapLocations(rows []repo.LocationRow) []Location {
	out := make([]Location, 0, len(rows))
	for _, r := range rows {
		out = append(out, Location{
			ID:      r.ID,
			Country: r.Country,
			Region:  nullableString(r.Region),
			IsoCode: nullableString(r.IsoCode),
		})
	}
	return out
}

func mapEpidemic(row repo.EpidemicRow) EpidemicDetail {
	return EpidemicDetail{
		ID:        row.ID,
		Name:      row.Name,
		Type:      nullableString(row.Type),
		StartDate: nullableDate(row.StartDate),
		EndDate:   nullableDate(row.EndDate),
		Active:    !row.EndDate.Valid,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// nullableString maps NULL and the empty string to nil.
func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func nullableDate(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	v := formatDate(t.Time)
	return &v
}

func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
