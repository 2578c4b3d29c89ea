package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

var ErrInvalidFilter = errors.New("invalid filter")

// parseEpidemicID parses the optional epidemicId filter. Empty means no filter.
func parseEpidemicID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: epidemicId must be a positive integer, got %q", ErrInvalidFilter, raw)
	}
	return &id, nil
}

// epidemicFilter reads epidemicId from the query string. An invalid value is
// dropped (no filter) unless strict filters are enabled, in which case a 400
// is written and ok is false.
func (s *Server) epidemicFilter(w http.ResponseWriter, r *http.Request) (id *int64, ok bool) {
	id, err := parseEpidemicID(r.URL.Query().Get("epidemicId"))
	if err == nil {
		return id, true
	}

	if s.strictFilters {
		if err := writeError(w, http.StatusBadRequest, err.Error()); err != nil {
			s.logger.Warn("failed to write error response", zap.Error(err))
		}
		return nil, false
	}

	s.logger.Warn("ignoring invalid filter", zap.Error(err))
	return nil, true
}
