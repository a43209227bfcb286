package httputil_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnusozprime/hero-wars-data/internal/common/httputil"
)

func testSettings() httputil.Settings {
	return httputil.Settings{
		Timeout:                    5 * time.Second,
		RetryCount:                 3,
		RetryBackoff:               50 * time.Millisecond,
		RetryableStatusCodes:       []int{500, 502, 503, 504},
		CBSlidingWindowSize:        100,
		CBMinimumRequiredCalls:     10,
		CBFailureRateThreshold:     90,
		CBPermittedCallsInHalfOpen: 3,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}

func TestCircuitBreaker_FastFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requestCount.Add(1)

		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	settings := testSettings()
	settings.RetryCount = 1
	settings.CBSlidingWindowSize = 1
	settings.CBMinimumRequiredCalls = 1
	settings.CBFailureRateThreshold = 100
	settings.CBPermittedCallsInHalfOpen = 1
	settings.CBWaitDurationInOpenState = 2 * time.Second

	client := httputil.NewResilientClient(settings, logger, "test_feed")

	_, err := client.R().Get(server.URL + "/feed")
	require.Error(t, err)

	initialRequestCount := requestCount.Load()

	start := time.Now()
	_, err = client.R().Get(server.URL + "/feed")
	duration := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, duration, 200*time.Millisecond, "Circuit breaker должен отвечать быстро")
	assert.Equal(t, initialRequestCount, requestCount.Load(),
		"Circuit breaker должен предотвратить дополнительные запросы к серверу")
}

func TestRetryWithBackoff(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requestCount.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := httputil.NewResilientClient(testSettings(), logger, "test_feed")

	resp, err := client.R().Get(server.URL + "/feed")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), requestCount.Load(), "Должно быть 3 запроса: 2 неудачных + 1 успешный")
}

func TestNonRetryableStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requestCount.Add(1)

		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := httputil.NewResilientClient(testSettings(), logger, "test_feed")

	resp, err := client.R().Get(server.URL + "/feed")

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, int32(1), requestCount.Load())
}
