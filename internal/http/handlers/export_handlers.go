package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rogerio-castellano/epidemic-stats/internal/stats"
	"go.uber.org/zap"
)

var dailyCSVHeader = []string{
	"id", "date", "epidemic_id", "epidemic_name", "epidemic_type", "country", "region",
	"cases", "active", "deaths", "recovered", "new_cases", "new_deaths", "new_recovered",
}

// ExportDailyStatsHandler godoc
// @Summary Export latest daily statistics
// @Tags stats
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param epidemicId query int false "Only rows of this epidemic"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /daily/export [get]
func (s *Server) ExportDailyStatsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		if err := writeError(w, http.StatusBadRequest, "format must be 'csv' or 'json'"); err != nil {
			s.logger.Warn("failed to write error response", zap.Error(err))
		}
		return
	}

	epidemicID, ok := s.epidemicFilter(w, r)
	if !ok {
		return
	}

	daily, err := s.service.GetDailyStats(r.Context(), epidemicID)
	if err != nil {
		s.fail(w, r, "failed to export daily statistics", err)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="daily_stats.json"`)
		if err := json.NewEncoder(w).Encode(daily); err != nil {
			s.logger.Warn("failed to write export", zap.Error(err))
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="daily_stats.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write(dailyCSVHeader)
		for _, d := range daily {
			_ = csvWriter.Write(dailyCSVRecord(d))
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			s.logger.Warn("failed to write export", zap.Error(err))
		}
	}
}

func dailyCSVRecord(d stats.DailyStat) []string {
	region, epidemicType := "", ""
	if d.Location.Region != nil {
		region = *d.Location.Region
	}
	if d.Epidemic.Type != nil {
		epidemicType = *d.Epidemic.Type
	}
	return []string{
		strconv.FormatInt(d.ID, 10),
		d.Date,
		strconv.FormatInt(d.Epidemic.ID, 10),
		d.Epidemic.Name,
		epidemicType,
		d.Location.Country,
		region,
		strconv.FormatInt(d.Cases, 10),
		strconv.FormatInt(d.Active, 10),
		strconv.FormatInt(d.Deaths, 10),
		strconv.FormatInt(d.Recovered, 10),
		strconv.FormatInt(d.NewCases, 10),
		strconv.FormatInt(d.NewDeaths, 10),
		strconv.FormatInt(d.NewRecovered, 10),
	}
}
