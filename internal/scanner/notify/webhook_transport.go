package notify

import (
	"context"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"github.com/magnusozprime/hero-wars-data/internal/common/httputil"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type WebhookTransport struct {
	client *resty.Client
	url    string
	logger *slog.Logger
}

func NewWebhookTransport(url string, settings httputil.Settings, logger *slog.Logger) *WebhookTransport {
	return &WebhookTransport{
		client: httputil.NewResilientClient(settings, logger, "webhook"),
		url:    url,
		logger: logger,
	}
}

func (t *WebhookTransport) Name() string {
	return string(WebhookNotifier)
}

func (t *WebhookTransport) Deliver(ctx context.Context, event *models.GiftNotification) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(t.url)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return &customerrors.HTTPError{StatusCode: resp.StatusCode()}
	}

	t.logger.Debug("Уведомление отправлено в webhook",
		"postID", event.PostID,
		"status", resp.StatusCode(),
	)

	return nil
}
