package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"go.uber.org/zap"
)

// GetLocationsHandler godoc
// @Summary List locations
// @Description Every location ordered by country and region. An empty store gives an empty list.
// @Tags reference
// @Produce json
// @Success 200 {array} stats.Location
// @Failure 500 {object} ErrorResponse
// @Router /locations [get]
func (s *Server) GetLocationsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, "locations", "failed to fetch locations", func() (any, error) {
		return s.service.GetLocations(r.Context())
	})
}

// GetFilterOptionsHandler godoc
// @Summary Filter options
// @Description Distinct countries and epidemic types, sorted.
// @Tags reference
// @Produce json
// @Success 200 {object} stats.FilterOptions
// @Failure 500 {object} ErrorResponse
// @Router /filters [get]
func (s *Server) GetFilterOptionsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, "filters", "failed to fetch filter options", func() (any, error) {
		return s.service.GetFilterOptions(r.Context())
	})
}

// GetEpidemicHandler godoc
// @Summary Epidemic details
// @Tags reference
// @Produce json
// @Param id path int true "Epidemic ID"
// @Success 200 {object} stats.EpidemicDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /epidemics/{id} [get]
func (s *Server) GetEpidemicHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseEpidemicID(chi.URLParam(r, "id"))
	if err != nil || id == nil {
		if err := writeError(w, http.StatusBadRequest, "id must be a positive integer"); err != nil {
			s.logger.Warn("failed to write error response", zap.Error(err))
		}
		return
	}

	epidemic, err := s.service.GetEpidemic(r.Context(), *id)
	switch {
	case errors.Is(err, repo.ErrEpidemicNotFound):
		if err := writeError(w, http.StatusNotFound, "epidemic not found"); err != nil {
			s.logger.Warn("failed to write error response", zap.Error(err))
		}
	case err != nil:
		s.fail(w, r, "failed to fetch epidemic", err)
	default:
		if err := writeJSON(w, http.StatusOK, epidemic); err != nil {
			s.logger.Warn("failed to write response", zap.Error(err))
		}
	}
}
