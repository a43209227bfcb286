package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magnusozprime/hero-wars-data/internal/common/middleware"
	domainErrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/handler"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/handler/mocks"
)

func newRouter(t *testing.T, scanner handler.Scanner, requests int) http.Handler {
	t.Helper()

	return newRouterWithGifts(t, scanner, mocks.NewGiftService(t), requests)
}

func newRouterWithGifts(t *testing.T, scanner handler.Scanner, gifts handler.GiftService, requests int) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limiter := middleware.NewRateLimiter(ctx, requests, time.Minute, logger)

	return handler.NewRouter(handler.NewScanHandler(scanner, logger), handler.NewGiftHandler(gifts, logger), limiter)
}

func decodeObject(t *testing.T, body []byte) map[string]jx.Raw {
	t.Helper()

	fields := make(map[string]jx.Raw)

	require.NoError(t, jx.DecodeBytes(body).Obj(func(d *jx.Decoder, key string) error {
		raw, err := d.Raw()
		if err != nil {
			return err
		}

		fields[key] = raw

		return nil
	}))

	return fields
}

func TestScanHandler_ScanPost_ReturnsReport(t *testing.T) {
	t.Parallel()

	report := models.NewRunReport(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	report.Update(func(r *models.RunReport) {
		r.Posts = 3
		r.ConfirmedGifts = 1
		r.Notifications = 1
	})
	report.AddError(errors.New("timeout"))

	scanner := mocks.NewScanner(t)
	scanner.On("Run", mock.Anything).Return(report, nil).Once()

	rec := httptest.NewRecorder()
	newRouter(t, scanner, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	fields := decodeObject(t, rec.Body.Bytes())
	assert.Equal(t, "3", fields["posts"].String())
	assert.Equal(t, "1", fields["confirmedGifts"].String())
	assert.Equal(t, "false", fields["deadlineReached"].String())
	assert.Equal(t, `"2026-01-02T03:04:05Z"`, fields["startedAt"].String())
	assert.Equal(t, `["timeout"]`, fields["errors"].String())
}

func TestScanHandler_ScanPost_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "run in progress", err: &domainErrors.ErrScanInProgress{}, wantStatus: http.StatusConflict},
		{name: "malformed feed", err: &domainErrors.MalformedFeedError{Kind: "string"}, wantStatus: http.StatusBadGateway},
		{name: "feed unavailable", err: &domainErrors.ErrFeedRequest{URL: "u", StatusCode: 403}, wantStatus: http.StatusBadGateway},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			scanner := mocks.NewScanner(t)
			scanner.On("Run", mock.Anything).Return(nil, tt.err).Once()

			rec := httptest.NewRecorder()
			newRouter(t, scanner, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			fields := decodeObject(t, rec.Body.Bytes())
			assert.Contains(t, fields, "description")
		})
	}
}

func TestScanHandler_ScanPost_RunSurvivesClientCancel(t *testing.T) {
	t.Parallel()

	scanner := mocks.NewScanner(t)
	scanner.On("Run", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	})).Return(models.NewRunReport(time.Now()), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	newRouter(t, scanner, 10).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestScanHandler_RateLimited(t *testing.T) {
	t.Parallel()

	scanner := mocks.NewScanner(t)
	scanner.On("Run", mock.Anything).Return(models.NewRunReport(time.Now()), nil).Once()

	router := newRouter(t, scanner, 1)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRouter_HealthAndMethods(t *testing.T) {
	t.Parallel()

	router := newRouter(t, mocks.NewScanner(t), 10)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scan", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
