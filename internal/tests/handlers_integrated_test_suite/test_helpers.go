package handlers_integrated_test_suite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/epidemic-stats/internal/db"
	handler "github.com/rogerio-castellano/epidemic-stats/internal/http/handlers"
	"github.com/rogerio-castellano/epidemic-stats/internal/http/router"
	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"github.com/rogerio-castellano/epidemic-stats/internal/stats"
)

// testSchema keeps the suite's tables away from real data; every pooled
// connection gets it as its search_path.
const testSchema = "epistats_it"

var database *sqlx.DB

var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS ` + testSchema,
	`CREATE TABLE IF NOT EXISTS ` + testSchema + `.epidemic (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		type VARCHAR(100),
		start_date DATE,
		end_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS ` + testSchema + `.localisation (
		id SERIAL PRIMARY KEY,
		country VARCHAR(100) NOT NULL,
		region VARCHAR(150),
		iso_code VARCHAR(10)
	)`,
	`CREATE TABLE IF NOT EXISTS ` + testSchema + `.daily_stats (
		id SERIAL PRIMARY KEY,
		id_epidemic INTEGER NOT NULL REFERENCES ` + testSchema + `.epidemic(id) ON DELETE CASCADE,
		id_loc INTEGER NOT NULL REFERENCES ` + testSchema + `.localisation(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		cases INTEGER DEFAULT 0,
		active INTEGER DEFAULT 0,
		deaths INTEGER DEFAULT 0,
		recovered INTEGER DEFAULT 0,
		new_cases INTEGER DEFAULT 0,
		new_deaths INTEGER DEFAULT 0,
		new_recovered INTEGER DEFAULT 0
	)`,
}

func setupDatabase(ctx context.Context, databaseURL string) error {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return fmt.Errorf("DATABASE_URL must be a postgres:// URL: %w", err)
	}
	q := u.Query()
	q.Set("search_path", testSchema)
	u.RawQuery = q.Encode()

	database, err = db.Connect(ctx, db.Options{
		URL:          u.String(),
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create test schema: %w", err)
		}
	}
	return nil
}

func testNow() time.Time {
	return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
}

func newTestRouter() http.Handler {
	statsRepo := repo.NewPostgresStatsRepository(database, 5*time.Second)
	service := stats.NewService(statsRepo, nil, stats.WithClock(testNow))
	return router.NewRouter(router.Dependencies{
		Server: handler.NewServer(service, nil, handler.Options{}),
	})
}

func resetTables(t *testing.T) {
	t.Helper()
	mustExec(t, `TRUNCATE daily_stats, epidemic, localisation RESTART IDENTITY CASCADE`)
}

func mustExec(t *testing.T, query string, args ...any) {
	t.Helper()
	if _, err := database.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// insertEpidemic takes nil for a NULL type, start or end date.
func insertEpidemic(t *testing.T, id int64, name string, typ, start, end any) {
	t.Helper()
	mustExec(t, `INSERT INTO epidemic (id, name, type, start_date, end_date) VALUES ($1, $2, $3, $4, $5)`,
		id, name, typ, start, end)
}

func insertLocation(t *testing.T, id int64, country string, region, isoCode any) {
	t.Helper()
	mustExec(t, `INSERT INTO localisation (id, country, region, iso_code) VALUES ($1, $2, $3, $4)`,
		id, country, region, isoCode)
}

// insertStat records new_cases equal to cases. Counts may be nil for NULL.
func insertStat(t *testing.T, epidemicID, locationID int64, date string, cases, deaths, active any) {
	t.Helper()
	mustExec(t, `INSERT INTO daily_stats (id_epidemic, id_loc, date, cases, deaths, active, new_cases)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		epidemicID, locationID, date, cases, deaths, active, cases)
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

func strPtr(s string) *string {
	return &s
}
