package handlers_test_suite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	handler "github.com/rogerio-castellano/epidemic-stats/internal/http/handlers"
	"github.com/rogerio-castellano/epidemic-stats/internal/http/router"
	"github.com/rogerio-castellano/epidemic-stats/internal/models"
	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"github.com/rogerio-castellano/epidemic-stats/internal/stats"
)

var statsRepo *repo.InMemoryStatsRepository

func init() {
	statsRepo = repo.NewInMemoryStatsRepository()
}

func testNow() time.Time {
	return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
}

func newTestRouter(opts handler.Options) http.Handler {
	service := stats.NewService(statsRepo, nil, stats.WithClock(testNow))
	return router.NewRouter(router.Dependencies{
		Server: handler.NewServer(service, nil, opts),
	})
}

func clearAllStats() {
	statsRepo.Clear()
}

func date(s string) time.Time {
	t, err := time.Parse(stats.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedStats loads two epidemics, one ended, reported in France (with and
// without a region) and Italy.
func seedStats() {
	fluStart := date("2024-01-01")
	choleraStart := date("2024-02-01")
	ended := date("2024-03-25")

	statsRepo.AddEpidemic(models.Epidemic{ID: 1, Name: "Flu", Type: strPtr("viral"), StartDate: &fluStart})
	statsRepo.AddEpidemic(models.Epidemic{ID: 2, Name: "Cholera", Type: strPtr("bacterial"), StartDate: &choleraStart, EndDate: &ended})

	statsRepo.AddLocation(models.Location{ID: 1, Country: "France"})
	statsRepo.AddLocation(models.Location{ID: 2, Country: "France", Region: strPtr("Bretagne"), IsoCode: strPtr("FR-BRE")})
	statsRepo.AddLocation(models.Location{ID: 3, Country: "Italy", IsoCode: strPtr("IT")})

	statsRepo.AddDailyStat(models.DailyStat{ID: 1, Date: date("2024-03-30"), Cases: 10, Deaths: 0, Active: 8, NewCases: 10, EpidemicID: 1, LocationID: 1})
	statsRepo.AddDailyStat(models.DailyStat{ID: 2, Date: date("2024-03-31"), Cases: 15, Deaths: 1, Active: 12, NewCases: 5, NewDeaths: 1, EpidemicID: 1, LocationID: 1})
	statsRepo.AddDailyStat(models.DailyStat{ID: 3, Date: date("2024-03-31"), Cases: 30, Deaths: 2, Active: 20, NewCases: 30, NewDeaths: 2, EpidemicID: 1, LocationID: 2})
	statsRepo.AddDailyStat(models.DailyStat{ID: 4, Date: date("2024-03-20"), Cases: 200, Deaths: 20, Active: 0, NewCases: 4, EpidemicID: 2, LocationID: 3})
}

func strPtr(s string) *string {
	return &s
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("error decoding response: %w", err)
	}
	return v, nil
}

// memoryCache is a ResponseCache kept in a map.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	err   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	data, ok := c.items[key]
	return data, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.items[key] = data
	return nil
}

func (c *memoryCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}
