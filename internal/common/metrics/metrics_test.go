package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
)

func TestRecordHTTPRequest(t *testing.T) {
	// Arrange
	service := "test-service"
	method := "POST"
	endpoint := "/api/v1/scan"

	// Act
	metrics.RecordHTTPRequest(service, method, endpoint, 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(service, method, endpoint, 503, 10*time.Millisecond)

	// Assert
	assert.Equal(t, float64(1),
		testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(service, method, endpoint, metrics.StatusSuccess)))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(service, method, endpoint, metrics.StatusError)))
}

func TestRecordResolution(t *testing.T) {
	// Arrange
	before := testutil.ToFloat64(metrics.ResolutionsTotal.WithLabelValues("valid", "short_circuit"))

	// Act
	metrics.RecordResolution("valid", "short_circuit", 0)

	// Assert
	after := testutil.ToFloat64(metrics.ResolutionsTotal.WithLabelValues("valid", "short_circuit"))
	assert.Equal(t, before+1, after)
}

func TestRecordGiftSuppressed(t *testing.T) {
	// Act
	metrics.RecordGiftSuppressed("memo")
	metrics.RecordGiftSuppressed("memo")

	// Assert
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.GiftsSuppressedTotal.WithLabelValues("memo")))
}

func TestRecordNotification(t *testing.T) {
	// Act
	metrics.RecordNotification("TELEGRAM", metrics.StatusError)

	// Assert
	assert.Equal(t, float64(1),
		testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("TELEGRAM", metrics.StatusError)))
}

func TestRecordFeedFetch(t *testing.T) {
	// Act
	metrics.RecordFeedFetch(metrics.StatusSuccess)

	// Assert
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FeedFetchesTotal.WithLabelValues(metrics.StatusSuccess)))
}
