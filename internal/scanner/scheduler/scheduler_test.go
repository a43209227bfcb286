package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/scheduler"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/scheduler/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_StartRunsImmediatelyAndRepeats(t *testing.T) {
	mockScanner := mocks.NewScanner(t)

	runs := make(chan struct{}, 10)

	mockScanner.On("Run", mock.Anything).
		Run(func(mock.Arguments) { runs <- struct{}{} }).
		Return(models.NewRunReport(time.Now()), nil)

	s := scheduler.NewScheduler(mockScanner, 50*time.Millisecond, discardLogger())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-runs:
		case <-time.After(2 * time.Second):
			t.Fatalf("проход %d не запустился", i+1)
		}
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	t.Parallel()

	t.Run("report returned", func(t *testing.T) {
		t.Parallel()

		mockScanner := mocks.NewScanner(t)
		report := models.NewRunReport(time.Now())
		report.AddError(errors.New("boom"))

		mockScanner.On("Run", mock.Anything).Return(report, nil).Once()

		s := scheduler.NewScheduler(mockScanner, time.Hour, discardLogger())

		assert.Same(t, report, s.RunOnce(context.Background()))
	})

	t.Run("overlapping run skipped", func(t *testing.T) {
		t.Parallel()

		mockScanner := mocks.NewScanner(t)
		mockScanner.On("Run", mock.Anything).Return(nil, &domainErrors.ErrScanInProgress{}).Once()

		s := scheduler.NewScheduler(mockScanner, time.Hour, discardLogger())

		assert.Nil(t, s.RunOnce(context.Background()))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		mockScanner := mocks.NewScanner(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := scheduler.NewScheduler(mockScanner, time.Hour, discardLogger())

		assert.Nil(t, s.RunOnce(ctx))
		mockScanner.AssertNotCalled(t, "Run", mock.Anything)
	})
}
