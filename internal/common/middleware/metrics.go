package middleware

import (
	"net/http"
	"time"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics записывает количество и длительность запросов к HTTP API сканера.
func Metrics(serviceName string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(serviceName, r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}
