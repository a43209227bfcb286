package metrics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
)

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		checks   map[string]metrics.HealthCheck
		expected int
	}{
		{
			name:     "no checks",
			checks:   nil,
			expected: http.StatusOK,
		},
		{
			name: "healthy database",
			checks: map[string]metrics.HealthCheck{
				"postgres": func(context.Context) error { return nil },
			},
			expected: http.StatusOK,
		},
		{
			name: "database down",
			checks: map[string]metrics.HealthCheck{
				"postgres": func(context.Context) error { return errors.New("connection refused") },
			},
			expected: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)

			metrics.HealthHandler(tt.checks, logger).ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
