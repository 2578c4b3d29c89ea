package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type pingService struct {
	StatsService
	err error
}

func (p pingService) Ping(ctx context.Context) error {
	return p.err
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestHealthHandler_LogsFailedWrites(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		status  int
		message string
	}{
		{"healthy", nil, http.StatusOK, "failed to write response"},
		{"unhealthy", errors.New("no connection"), http.StatusServiceUnavailable, "failed to write error response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			s := NewServer(pingService{err: tt.pingErr}, zap.New(core), Options{})

			w := brokenWriter{httptest.NewRecorder()}
			s.HealthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			warns := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage(tt.message).All()
			require.Len(t, warns, 1)
			assert.Contains(t, warns[0].ContextMap()["error"], "broken pipe")
		})
	}
}
