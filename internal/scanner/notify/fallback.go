package notify

import (
	"context"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type FallbackTransport struct {
	primary   Transport
	secondary Transport
	logger    *slog.Logger
}

func NewFallbackTransport(primary, secondary Transport, logger *slog.Logger) *FallbackTransport {
	return &FallbackTransport{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

func (t *FallbackTransport) Name() string {
	return t.primary.Name() + "+" + t.secondary.Name()
}

func (t *FallbackTransport) Deliver(ctx context.Context, event *models.GiftNotification) error {
	err := t.primary.Deliver(ctx, event)
	if err == nil {
		return nil
	}

	t.logger.Warn("Основной транспорт недоступен, переключаемся на резервный",
		"primary", t.primary.Name(),
		"secondary", t.secondary.Name(),
		"primaryError", err,
		"postID", event.PostID,
	)

	if fallbackErr := t.secondary.Deliver(ctx, event); fallbackErr != nil {
		return multierr.Append(err, fallbackErr)
	}

	t.logger.Info("Уведомление отправлено через резервный транспорт",
		"postID", event.PostID,
	)

	return nil
}
