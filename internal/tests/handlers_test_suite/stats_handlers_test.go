package handlers_test_suite

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/epidemic-stats/internal/http/handlers"
	"github.com/rogerio-castellano/epidemic-stats/internal/models"
	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"github.com/rogerio-castellano/epidemic-stats/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStatsHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp, err := decode[stats.DashboardStats](w)
	require.NoError(t, err)

	g := resp.GlobalStats
	assert.Equal(t, int64(2), g.TotalEpidemics)
	assert.Equal(t, int64(1), g.ActiveEpidemics)
	assert.Equal(t, int64(245), g.TotalCases)
	assert.Equal(t, int64(23), g.TotalDeaths)
	require.NotNil(t, g.MortalityRate)
	assert.InDelta(t, 9.39, *g.MortalityRate, 1e-9)

	require.Len(t, resp.TypeDistribution, 2)
	assert.Equal(t, stats.TypeDistribution{Type: strPtr("bacterial"), EpidemicCount: 1, Cases: 200, Deaths: 20}, resp.TypeDistribution[0])
	assert.Equal(t, stats.TypeDistribution{Type: strPtr("viral"), EpidemicCount: 1, Cases: 45, Deaths: 3}, resp.TypeDistribution[1])

	require.Len(t, resp.GeographicDistribution, 2)
	assert.Equal(t, "Italy", resp.GeographicDistribution[0].Country)
	assert.Equal(t, int64(45), resp.GeographicDistribution[1].Cases)

	require.Len(t, resp.DailyEvolution, 3)
	assert.Equal(t, stats.DailyEvolution{Date: "2024-03-31", NewCases: 35, NewDeaths: 3, ActiveCases: 32}, resp.DailyEvolution[2])

	require.Len(t, resp.TopActiveEpidemics, 2)
	for _, a := range resp.TopActiveEpidemics {
		assert.Equal(t, "Flu", a.Name)
	}
	assert.Equal(t, int64(30), resp.TopActiveEpidemics[0].TotalCases)
}

func TestGetDashboardStatsHandler_EmptyStore(t *testing.T) {
	t.Cleanup(clearAllStats)
	r := newTestRouter(handler.Options{})

	w := get(r, "/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	assert.Contains(t, body, `"mortality_rate":null`)
	assert.Contains(t, body, `"top_active_epidemics":[]`)
	assert.Contains(t, body, `"daily_evolution":[]`)
}

func TestGetDashboardStatsHandler_QueryFailure(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	statsRepo.FailOn(repo.OpTopActiveEpidemics, errors.New("connection reset by peer"))
	r := newTestRouter(handler.Options{})

	w := get(r, "/dashboard")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	assert.JSONEq(t, `{"error":"failed to fetch dashboard statistics"}`, w.Body.String())
}

func TestGetDailyStatsHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/daily")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	resp, err := decode[[]stats.DailyStat](w)
	require.NoError(t, err)
	require.Len(t, resp, 4)

	ids := []int64{resp[0].ID, resp[1].ID, resp[2].ID, resp[3].ID}
	assert.Equal(t, []int64{3, 2, 1, 4}, ids)

	require.NotNil(t, resp[0].Location.Region)
	assert.Equal(t, "Bretagne", *resp[0].Location.Region)
	assert.Nil(t, resp[1].Location.Region)
	assert.Equal(t, stats.EpidemicRef{ID: 1, Name: "Flu", Type: strPtr("viral")}, resp[1].Epidemic)
	assert.Equal(t, "2024-03-31", resp[1].Date)
}

func TestGetDailyStatsHandler_RegionEncodedAsNull(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/daily?epidemicId=2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.Contains(t, w.Body.String(), `"location":{"country":"Italy","region":null}`)
}

func TestGetDailyStatsHandler_Filter(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	tests := []struct {
		name      string
		query     string
		expectLen int
	}{
		{name: "Existing epidemic", query: "?epidemicId=1", expectLen: 3},
		{name: "Unknown epidemic", query: "?epidemicId=999", expectLen: 0},
		{name: "Non numeric is ignored", query: "?epidemicId=abc", expectLen: 4},
		{name: "Trailing garbage is ignored", query: "?epidemicId=12abc", expectLen: 4},
		{name: "Zero is ignored", query: "?epidemicId=0", expectLen: 4},
		{name: "Empty is ignored", query: "?epidemicId=", expectLen: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/daily"+tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			resp, err := decode[[]stats.DailyStat](w)
			require.NoError(t, err)
			assert.NotNil(t, resp)
			assert.Len(t, resp, tt.expectLen)
		})
	}
}

func TestGetDailyStatsHandler_StrictFilters(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{StrictFilters: true})

	w := get(r, "/daily?epidemicId=abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp, err := decode[handler.ErrorResponse](w)
	require.NoError(t, err)
	assert.Contains(t, resp.Error, "epidemicId")

	w = get(r, "/daily?epidemicId=1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for a valid filter, got %d", w.Code)
	}
}

func TestGetDailyStatsHandler_QueryFailure(t *testing.T) {
	t.Cleanup(clearAllStats)
	statsRepo.FailOn(repo.OpDailyStats, errors.New("timeout"))
	r := newTestRouter(handler.Options{})

	w := get(r, "/daily")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	assert.JSONEq(t, `{"error":"failed to fetch daily statistics"}`, w.Body.String())
}

func TestGetTypeStatsHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/types")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[[]stats.TypeStats](w)
	require.NoError(t, err)

	assert.Equal(t, []stats.TypeStats{
		{Type: strPtr("bacterial"), Count: 1, TotalCases: 200, TotalDeaths: 20, AvgActiveCases: 0},
		{Type: strPtr("viral"), Count: 1, TotalCases: 45, TotalDeaths: 3, AvgActiveCases: 16},
	}, resp)
}

func TestGetGeographicStatsHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/geographic")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	assert.Contains(t, body, `"country":"Italy","region":null`)

	resp, err := decode[[]stats.GeographicStats](w)
	require.NoError(t, err)
	require.Len(t, resp, 3)
	assert.Equal(t, "Italy", resp[0].Country)
	require.NotNil(t, resp[1].Region)
	assert.Equal(t, "Bretagne", *resp[1].Region)
	assert.Equal(t, "France", resp[2].Country)
	assert.Nil(t, resp[2].Region)
	assert.Equal(t, int64(12), resp[2].AvgActiveCases)
}

func TestStatsHandlers_QueryFailureMessages(t *testing.T) {
	t.Cleanup(clearAllStats)
	statsRepo.FailOn(repo.OpTypeStats, errors.New("boom"))
	statsRepo.FailOn(repo.OpGeographicStats, errors.New("boom"))
	r := newTestRouter(handler.Options{})

	tests := []struct {
		path    string
		message string
	}{
		{"/types", "failed to fetch statistics by type"},
		{"/geographic", "failed to fetch geographic statistics"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(r, tt.path)
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", w.Code)
			}
			resp, err := decode[handler.ErrorResponse](w)
			require.NoError(t, err)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestExportDailyStatsHandler_CSV(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/daily/export?format=csv&epidemicId=1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "daily_stats.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,date,epidemic_id,epidemic_name,epidemic_type,country,region,cases,active,deaths,recovered,new_cases,new_deaths,new_recovered", lines[0])
	assert.Equal(t, "3,2024-03-31,1,Flu,viral,France,Bretagne,30,20,2,0,30,2,0", lines[1])
	assert.Equal(t, "2,2024-03-31,1,Flu,viral,France,,15,12,1,0,5,1,0", lines[2])
}

func TestExportDailyStatsHandler_JSON(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/daily/export?format=json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.Contains(t, w.Header().Get("Content-Disposition"), "daily_stats.json")

	resp, err := decode[[]stats.DailyStat](w)
	require.NoError(t, err)
	assert.Len(t, resp, 4)
}

func TestExportDailyStatsHandler_InvalidFormat(t *testing.T) {
	t.Cleanup(clearAllStats)
	r := newTestRouter(handler.Options{})

	for _, q := range []string{"", "?format=xml"} {
		w := get(r, "/daily/export"+q)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", q, w.Code)
		}
		assert.JSONEq(t, `{"error":"format must be 'csv' or 'json'"}`, w.Body.String())
	}
}

func TestHealthHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	r := newTestRouter(handler.Options{})

	w := get(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	statsRepo.FailOn(repo.OpPing, errors.New("no connection"))
	w = get(r, "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	assert.JSONEq(t, `{"error":"database unavailable"}`, w.Body.String())
}

func TestResponseCache(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	cache := newMemoryCache()
	r := newTestRouter(handler.Options{Cache: cache})

	first := get(r, "/types")
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", first.Code)
	}

	// A cached response survives the store going away.
	statsRepo.FailOn(repo.OpTypeStats, errors.New("down"))
	second := get(r, "/types")
	if second.Code != http.StatusOK {
		t.Fatalf("expected cached 200 OK, got %d", second.Code)
	}
	assert.Equal(t, first.Body.String(), second.Body.String())

	get(r, "/daily?epidemicId=1")
	get(r, "/daily?epidemicId=nope")
	assert.ElementsMatch(t, []string{"types", "daily?epidemicId=1", "daily"}, cache.keys())
}

func TestResponseCache_ErrorsDoNotFailRequests(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	cache := newMemoryCache()
	cache.err = errors.New("redis: connection refused")
	r := newTestRouter(handler.Options{Cache: cache})

	w := get(r, "/geographic")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
}

func TestResponseCache_FailuresAreNotCached(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	cache := newMemoryCache()
	statsRepo.FailOn(repo.OpGlobalSnapshot, errors.New("down"))
	r := newTestRouter(handler.Options{Cache: cache})

	w := get(r, "/dashboard")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	assert.Empty(t, cache.keys())
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(handler.Options{})

	w := get(r, "/unknown")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetTypeStatsHandler_MissingTypeIsNull(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	statsRepo.AddEpidemic(models.Epidemic{ID: 3, Name: "Unnamed fever"})
	statsRepo.AddEpidemic(models.Epidemic{ID: 4, Name: "Blank fever", Type: strPtr("")})
	statsRepo.AddDailyStat(models.DailyStat{ID: 5, Date: date("2024-03-31"), Cases: 7, Active: 7, EpidemicID: 3, LocationID: 3})
	statsRepo.AddDailyStat(models.DailyStat{ID: 6, Date: date("2024-03-31"), Cases: 3, Active: 1, EpidemicID: 4, LocationID: 3})
	r := newTestRouter(handler.Options{})

	w := get(r, "/types")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[[]stats.TypeStats](w)
	require.NoError(t, err)
	require.Len(t, resp, 3)
	assert.Equal(t, stats.TypeStats{Type: nil, Count: 2, TotalCases: 10, TotalDeaths: 0, AvgActiveCases: 4}, resp[2])

	w = get(r, "/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.Contains(t, w.Body.String(), `{"type":null,"epidemic_count":2,"cases":10,"deaths":0}`)
}

func TestGetGeographicStatsHandler_EmptyRegionMergesWithNull(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	statsRepo.AddLocation(models.Location{ID: 4, Country: "France", Region: strPtr("")})
	statsRepo.AddDailyStat(models.DailyStat{ID: 5, Date: date("2024-03-31"), Cases: 5, Active: 4, EpidemicID: 1, LocationID: 4})
	r := newTestRouter(handler.Options{})

	w := get(r, "/geographic")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[[]stats.GeographicStats](w)
	require.NoError(t, err)

	var nullRegions []stats.GeographicStats
	for _, g := range resp {
		if g.Country == "France" && g.Region == nil {
			nullRegions = append(nullRegions, g)
		}
	}
	require.Len(t, nullRegions, 1)
	assert.Equal(t, int64(20), nullRegions[0].TotalCases)
}

func TestGetLocationsHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/locations")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.JSONEq(t, `[
		{"id": 2, "country": "France", "region": "Bretagne", "iso_code": "FR-BRE"},
		{"id": 1, "country": "France", "region": null, "iso_code": null},
		{"id": 3, "country": "Italy", "region": null, "iso_code": "IT"}
	]`, w.Body.String())

	clearAllStats()
	w = get(r, "/locations")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetFilterOptionsHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	r := newTestRouter(handler.Options{})

	w := get(r, "/filters")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.JSONEq(t, `{"countries":[],"types":[]}`, w.Body.String())

	seedStats()
	w = get(r, "/filters")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.JSONEq(t, `{"countries":["France","Italy"],"types":["bacterial","viral"]}`, w.Body.String())
}

func TestGetEpidemicHandler(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/epidemics/1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Flu",
		"type": "viral",
		"start_date": "2024-01-01",
		"end_date": null,
		"active": true
	}`, w.Body.String())

	w = get(r, "/epidemics/2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[stats.EpidemicDetail](w)
	require.NoError(t, err)
	assert.False(t, resp.Active)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, "2024-03-25", *resp.EndDate)
}

func TestGetEpidemicHandler_Errors(t *testing.T) {
	t.Cleanup(clearAllStats)
	seedStats()
	r := newTestRouter(handler.Options{})

	w := get(r, "/epidemics/999")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	assert.JSONEq(t, `{"error":"epidemic not found"}`, w.Body.String())

	for _, id := range []string{"abc", "0", "-1"} {
		w = get(r, "/epidemics/"+id)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", id, w.Code)
		}
		assert.JSONEq(t, `{"error":"id must be a positive integer"}`, w.Body.String())
	}

	statsRepo.FailOn(repo.OpEpidemic, errors.New("connection reset by peer"))
	w = get(r, "/epidemics/1")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	assert.JSONEq(t, `{"error":"failed to fetch epidemic"}`, w.Body.String())
}

func TestReferenceHandlers_QueryFailureMessages(t *testing.T) {
	tests := []struct {
		path    string
		op      string
		message string
	}{
		{"/locations", repo.OpLocations, "failed to fetch locations"},
		{"/filters", repo.OpCountries, "failed to fetch filter options"},
		{"/filters", repo.OpEpidemicTypes, "failed to fetch filter options"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			t.Cleanup(clearAllStats)
			seedStats()
			statsRepo.FailOn(tt.op, errors.New("timeout"))
			r := newTestRouter(handler.Options{})

			w := get(r, tt.path)
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", w.Code)
			}
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, w.Body.String())
		})
	}
}
