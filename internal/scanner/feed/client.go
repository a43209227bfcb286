package feed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/magnusozprime/hero-wars-data/internal/common/httputil"
	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	"github.com/magnusozprime/hero-wars-data/internal/config"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
)

const feedAccept = "application/json, text/plain, */*"

type Client struct {
	client *resty.Client
	url    string
	logger *slog.Logger
}

func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	client := httputil.NewResilientClient(httputil.SettingsFromConfig(cfg), logger, "feed")

	client.SetHeaders(map[string]string{
		"Accept": feedAccept,
	})

	if cfg.FeedUserAgent != "" {
		client.SetHeader("User-Agent", cfg.FeedUserAgent)
	}

	if cfg.FeedReferer != "" {
		client.SetHeader("Referer", cfg.FeedReferer)
	}

	return &Client{
		client: client,
		url:    cfg.FeedURL,
		logger: logger,
	}
}

// Fetch загружает одну страницу ленты и возвращает тело ответа без разбора.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.url)

	if err != nil {
		metrics.RecordFeedFetch(metrics.StatusError)
		metrics.RecordHTTPRequest("feed", http.MethodGet, c.url, 0, time.Since(start))

		return nil, err
	}

	metrics.RecordHTTPRequest("feed", http.MethodGet, c.url, resp.StatusCode(), time.Since(start))

	if !resp.IsSuccess() {
		metrics.RecordFeedFetch(metrics.StatusError)
		return nil, &customerrors.ErrFeedRequest{URL: c.url, StatusCode: resp.StatusCode()}
	}

	metrics.RecordFeedFetch(metrics.StatusSuccess)

	c.logger.Debug("Лента загружена",
		"url", c.url,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
	)

	return resp.Body(), nil
}
