package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "hero_wars_gifts"

	ScannerSubsystem = "scanner"
	NotifySubsystem  = "notify"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)
)

// Метрики движка.
var (
	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "feed_fetches_total",
			Help:      "Total number of feed fetches",
		},
		[]string{"status"},
	)

	PostsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "posts_processed_total",
			Help:      "Total number of posts scanned for gift links",
		},
	)

	CandidatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "candidate_links_total",
			Help:      "Total number of candidate links extracted from posts",
		},
	)

	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "resolutions_total",
			Help:      "Total number of resolved candidate links by outcome",
		},
		[]string{"outcome", "method"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "resolution_duration_seconds",
			Help:      "Redirect resolution duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)

	GiftsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "gifts_confirmed_total",
			Help:      "Total number of newly confirmed gifts",
		},
	)

	GiftsSuppressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "gifts_suppressed_total",
			Help:      "Total number of valid gifts suppressed as already known",
		},
		[]string{"reason"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "run_duration_seconds",
			Help:      "Full scan run duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ScannerSubsystem,
			Name:      "database_queries_total",
			Help:      "Total number of database queries",
		},
		[]string{"operation", "status"},
	)
)

var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: NotifySubsystem,
		Name:      "notifications_total",
		Help:      "Total number of gift notifications by transport and status",
	},
	[]string{"transport", "status"},
)

func RecordHTTPRequest(service, method, endpoint string, statusCode int, duration time.Duration) {
	status := StatusSuccess
	if statusCode >= 400 {
		status = StatusError
	}

	HTTPRequestsTotal.WithLabelValues(service, method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(service, method, endpoint).Observe(duration.Seconds())
}

func RecordFeedFetch(status string) {
	FeedFetchesTotal.WithLabelValues(status).Inc()
}

// RecordResolution method — "short_circuit" или "http".
func RecordResolution(outcome, method string, duration time.Duration) {
	ResolutionsTotal.WithLabelValues(outcome, method).Inc()
	ResolutionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func RecordGiftSuppressed(reason string) {
	GiftsSuppressedTotal.WithLabelValues(reason).Inc()
}

func RecordNotification(transport, status string) {
	NotificationsTotal.WithLabelValues(transport, status).Inc()
}

func RecordDatabaseQuery(operation, status string) {
	DatabaseQueriesTotal.WithLabelValues(operation, status).Inc()
}
