package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/magnusozprime/hero-wars-data/internal/config"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
)

type Settings struct {
	Timeout              time.Duration
	RetryCount           int
	RetryBackoff         time.Duration
	RetryableStatusCodes []int

	CBSlidingWindowSize        int
	CBMinimumRequiredCalls     int
	CBFailureRateThreshold     int
	CBPermittedCallsInHalfOpen int
	CBWaitDurationInOpenState  time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Timeout:                    cfg.ExternalRequestTimeout,
		RetryCount:                 cfg.RetryCount,
		RetryBackoff:               cfg.RetryBackoff,
		RetryableStatusCodes:       cfg.RetryableStatusCodes,
		CBSlidingWindowSize:        cfg.CBSlidingWindowSize,
		CBMinimumRequiredCalls:     cfg.CBMinimumRequiredCalls,
		CBFailureRateThreshold:     cfg.CBFailureRateThreshold,
		CBPermittedCallsInHalfOpen: cfg.CBPermittedCallsInHalfOpen,
		CBWaitDurationInOpenState:  cfg.CBWaitDurationInOpenState,
	}
}

// NewResilientClient возвращает resty клиент с повторами и circuit breaker на уровне транспорта.
func NewResilientClient(settings Settings, logger *slog.Logger, serviceName string) *resty.Client {
	client := resty.New()

	client.SetTimeout(settings.Timeout)

	client.SetRetryCount(settings.RetryCount)
	client.SetRetryWaitTime(settings.RetryBackoff)
	client.SetRetryMaxWaitTime(settings.RetryBackoff * 5)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return !errors.Is(err, gobreaker.ErrOpenState)
		}

		return slices.Contains(settings.RetryableStatusCodes, r.StatusCode())
	})

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        serviceName + "_circuit_breaker",
		MaxRequests: uint32(settings.CBPermittedCallsInHalfOpen), //nolint:gosec // G115: значение из конфига
		Interval:    time.Duration(settings.CBSlidingWindowSize) * time.Second,
		Timeout:     settings.CBWaitDurationInOpenState,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= uint32(settings.CBMinimumRequiredCalls) && //nolint:gosec // G115: значение из конфига
				failureRatio >= float64(settings.CBFailureRateThreshold)/100.0
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("Смена состояния circuit breaker",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			}
		},
	})

	client.SetTransport(&CircuitBreakerTransport{
		breaker:     breaker,
		next:        http.DefaultTransport,
		logger:      logger,
		serviceName: serviceName,
	})

	if logger != nil {
		client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if resp.Request.Attempt > 1 {
				logger.Info("Повторный HTTP запрос",
					"service", serviceName,
					"url", resp.Request.URL,
					"attempt", resp.Request.Attempt,
					"status", resp.StatusCode(),
				)
			}

			return nil
		})
	}

	return client
}

type CircuitBreakerTransport struct {
	breaker     *gobreaker.CircuitBreaker
	next        http.RoundTripper
	logger      *slog.Logger
	serviceName string
}

func (t *CircuitBreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, &customerrors.HTTPError{StatusCode: resp.StatusCode}
		}

		return resp, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) && t.logger != nil {
			t.logger.Warn("Circuit breaker открыт",
				"service", t.serviceName,
				"url", req.URL.String(),
			)
		}

		var httpErr *customerrors.HTTPError
		if errors.As(err, &httpErr) {
			// resty должен увидеть статус, чтобы решить, нужен ли повтор
			return &http.Response{
				StatusCode: httpErr.StatusCode,
				Status:     http.StatusText(httpErr.StatusCode),
				Body:       http.NoBody,
				Header:     make(http.Header),
				Request:    req,
			}, nil
		}

		return nil, err
	}

	return result.(*http.Response), nil
}
