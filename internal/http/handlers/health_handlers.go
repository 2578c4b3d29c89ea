package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler godoc
// @Summary Service health
// @Description Reports whether the database answers.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		if err := writeError(w, http.StatusServiceUnavailable, "database unavailable"); err != nil {
			s.logger.Warn("failed to write error response", zap.Error(err))
		}
		return
	}
	if err := writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}
