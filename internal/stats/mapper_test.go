package stats

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(sql.NullString{}))
	assert.Nil(t, nullableString(sql.NullString{String: "", Valid: true}))

	got := nullableString(sql.NullString{String: "Lombardy", Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, "Lombardy", *got)
}

func TestMapDailyStats_NestsEpidemicAndLocation(t *testing.T) {
	rows := []repo.DailyStatRow{{
		ID:           9,
		Date:         time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		Cases:        12,
		Active:       3,
		EpidemicID:   4,
		EpidemicName: "Measles",
		EpidemicType: sql.NullString{String: "viral", Valid: true},
		Country:      "Italy",
		Region:       sql.NullString{},
	}}

	body, err := json.Marshal(mapDailyStats(rows))
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": 9,
		"date": "2024-02-29",
		"cases": 12,
		"active": 3,
		"deaths": 0,
		"recovered": 0,
		"new_cases": 0,
		"new_deaths": 0,
		"new_recovered": 0,
		"epidemic": {"id": 4, "name": "Measles", "type": "viral"},
		"location": {"country": "Italy", "region": null}
	}]`, string(body))
}

func TestMapGlobalStats_KeepsStoreRounding(t *testing.T) {
	got := mapGlobalStats(repo.GlobalSnapshotRow{
		TotalCases:    3,
		TotalDeaths:   1,
		MortalityRate: sql.NullFloat64{Float64: 33.33, Valid: true},
	})
	require.NotNil(t, got.MortalityRate)
	assert.Equal(t, 33.33, *got.MortalityRate)
}

func TestMappersReturnEmptySlices(t *testing.T) {
	assert.NotNil(t, mapTypeDistribution(nil))
	assert.NotNil(t, mapCountryDistribution(nil))
	assert.NotNil(t, mapDailyEvolution(nil))
	assert.NotNil(t, mapActiveEpidemics(nil))
	assert.NotNil(t, mapDailyStats(nil))
	assert.NotNil(t, mapTypeStats(nil))
	assert.NotNil(t, mapGeographicStats(nil))
}

func TestMapEpidemic_NullDatesAndType(t *testing.T) {
	got := mapEpidemic(repo.EpidemicRow{
		ID:      5,
		Name:    "Dengue",
		Type:    sql.NullString{String: "", Valid: true},
		EndDate: sql.NullTime{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	})

	assert.Nil(t, got.Type)
	assert.Nil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2024-05-01", *got.EndDate)
	assert.False(t, got.Active)
}
