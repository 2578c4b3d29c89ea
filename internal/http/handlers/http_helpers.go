package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/epidemic-stats/internal/metrics"
	"github.com/rogerio-castellano/epidemic-stats/internal/repo"
	"go.uber.org/zap"
)

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return writeRaw(w, status, out, headers...)
}

func writeRaw(w http.ResponseWriter, status int, body []byte, headers ...http.Header) error {
	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func writeError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, ErrorResponse{Error: message})
}

// fail logs a failed operation and answers 500 with message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	var qf *repo.QueryFailure
	if errors.As(err, &qf) {
		fields = append(fields, zap.String("operation", qf.Op))
	}
	s.logger.Error(message, fields...)

	if err := writeError(w, http.StatusInternalServerError, message); err != nil {
		s.logger.Warn("failed to write error response", zap.Error(err))
	}
}

// respond serves fetch's result as JSON, going through the response cache
// when one is configured. Cache errors never fail the request.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, key, message string, fetch func() (any, error)) {
	ctx := r.Context()

	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		case ok:
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			if err := writeRaw(w, http.StatusOK, data); err != nil {
				s.logger.Warn("failed to write response", zap.Error(err))
			}
			return
		default:
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	result, err := fetch()
	if err != nil {
		s.fail(w, r, message, err)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		s.fail(w, r, message, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body); err != nil {
			s.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
		}
	}

	if err := writeRaw(w, http.StatusOK, body); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}
