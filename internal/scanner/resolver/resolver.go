package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/magnusozprime/hero-wars-data/internal/common"
	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	"github.com/magnusozprime/hero-wars-data/internal/config"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

const (
	methodShortCircuit = "short_circuit"
	methodHTTP         = "http"
)

// Resolver проверяет одну ссылку-кандидата. Ошибки сети не возвращаются наружу,
// а превращают кандидата в INVALID.
type Resolver struct {
	client  *resty.Client
	claims  *common.ClaimAnalyzer
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

func NewResolver(cfg *config.Config, logger *slog.Logger) *Resolver {
	client := resty.New().
		SetRedirectPolicy(maxHopsPolicy(cfg.ResolverMaxRedirects)).
		SetTimeout(cfg.ResolverTimeout)

	if cfg.FeedUserAgent != "" {
		client.SetHeader("User-Agent", cfg.FeedUserAgent)
	}

	limit := rate.Inf
	if cfg.ResolverRateLimit > 0 {
		limit = rate.Limit(cfg.ResolverRateLimit)
	}

	burst := int(math.Max(1, math.Ceil(cfg.ResolverRateLimit)))

	return &Resolver{
		client:  client,
		claims:  common.NewClaimAnalyzer(cfg.ClaimQueryKey),
		limiter: rate.NewLimiter(limit, burst),
		timeout: cfg.ResolverTimeout,
		logger:  logger,
	}
}

// maxHopsPolicy разрешает ровно maxHops переходов. via уже содержит исходный запрос,
// поэтому переход номер N проверяется при len(via) == N.
func maxHopsPolicy(maxHops int) resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(_ *http.Request, via []*http.Request) error {
		if len(via) > maxHops {
			return fmt.Errorf("превышен лимит редиректов: %d", maxHops)
		}

		return nil
	})
}

func (r *Resolver) Resolve(ctx context.Context, candidate models.GiftCandidate) *models.Resolution {
	start := time.Now()

	if claimID, ok := r.claims.ClaimID(candidate.RawURL); ok {
		metrics.RecordResolution(string(models.ResolutionValid), methodShortCircuit, time.Since(start))

		return &models.Resolution{
			Candidate:    candidate,
			Status:       models.ResolutionValid,
			FinalURL:     candidate.RawURL,
			ClaimID:      claimID,
			ShortCircuit: true,
		}
	}

	res := r.follow(ctx, candidate)

	metrics.RecordResolution(string(res.Status), methodHTTP, time.Since(start))

	if res.Err != nil {
		r.logger.Warn("Ссылка не прошла проверку",
			"postID", candidate.SourcePostID,
			"url", candidate.RawURL,
			"error", res.Err,
		)
	}

	return res
}

func (r *Resolver) follow(ctx context.Context, candidate models.GiftCandidate) *models.Resolution {
	invalid := func(cause error) *models.Resolution {
		return &models.Resolution{
			Candidate: candidate,
			Status:    models.ResolutionInvalid,
			Err:       &customerrors.LinkResolutionError{URL: candidate.RawURL, Cause: cause},
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.limiter.Wait(callCtx); err != nil {
		return invalid(err)
	}

	resp, err := r.client.R().
		SetContext(callCtx).
		SetDoNotParseResponse(true).
		Get(candidate.RawURL)
	if err != nil {
		return invalid(err)
	}

	defer resp.RawBody().Close()

	if resp.StatusCode() >= http.StatusBadRequest {
		return invalid(&customerrors.HTTPError{StatusCode: resp.StatusCode()})
	}

	finalURL := candidate.RawURL
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}

	claimID, ok := r.claims.ClaimID(finalURL)
	if !ok {
		r.logger.Debug("Итоговая ссылка не содержит идентификатор подарка",
			"url", candidate.RawURL,
			"finalURL", finalURL,
		)

		return &models.Resolution{
			Candidate: candidate,
			Status:    models.ResolutionInvalid,
			FinalURL:  finalURL,
		}
	}

	r.logger.Debug("Ссылка подтверждена",
		"url", candidate.RawURL,
		"finalURL", finalURL,
		"claimID", claimID,
	)

	return &models.Resolution{
		Candidate: candidate,
		Status:    models.ResolutionValid,
		FinalURL:  finalURL,
		ClaimID:   claimID,
	}
}
