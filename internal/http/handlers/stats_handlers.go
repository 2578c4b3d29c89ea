package handlers

import (
	"net/http"
	"strconv"
)

// GetDashboardStatsHandler godoc
// @Summary Dashboard statistics
// @Description Global totals, per-type and per-country distributions, the last 30 days of evolution and the top active epidemics.
// @Tags stats
// @Produce json
// @Success 200 {object} stats.DashboardStats
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (s *Server) GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, "dashboard", "failed to fetch dashboard statistics", func() (any, error) {
		return s.service.GetDashboardStats(r.Context())
	})
}

// GetDailyStatsHandler godoc
// @Summary Latest daily statistics
// @Description Up to 100 most recent daily rows, newest first. An invalid epidemicId is ignored unless strict filters are enabled.
// @Tags stats
// @Produce json
// @Param epidemicId query int false "Only rows of this epidemic"
// @Success 200 {array} stats.DailyStat
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /daily [get]
func (s *Server) GetDailyStatsHandler(w http.ResponseWriter, r *http.Request) {
	epidemicID, ok := s.epidemicFilter(w, r)
	if !ok {
		return
	}

	key := "daily"
	if epidemicID != nil {
		key += "?epidemicId=" + strconv.FormatInt(*epidemicID, 10)
	}

	s.respond(w, r, key, "failed to fetch daily statistics", func() (any, error) {
		return s.service.GetDailyStats(r.Context(), epidemicID)
	})
}

// GetTypeStatsHandler godoc
// @Summary Statistics per epidemic type
// @Tags stats
// @Produce json
// @Success 200 {array} stats.TypeStats
// @Failure 500 {object} ErrorResponse
// @Router /types [get]
func (s *Server) GetTypeStatsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, "types", "failed to fetch statistics by type", func() (any, error) {
		return s.service.GetTypeStats(r.Context())
	})
}

// GetGeographicStatsHandler godoc
// @Summary Statistics per country and region
// @Tags stats
// @Produce json
// @Success 200 {array} stats.GeographicStats
// @Failure 500 {object} ErrorResponse
// @Router /geographic [get]
func (s *Server) GetGeographicStatsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, "geographic", "failed to fetch geographic statistics", func() (any, error) {
		return s.service.GetGeographicStats(r.Context())
	})
}
