package notify

import (
	"context"
	"log/slog"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Name() string {
	return string(LogNotifier)
}

func (t *LogTransport) Deliver(_ context.Context, event *models.GiftNotification) error {
	urls := make([]string, 0, len(event.Links))
	for _, link := range event.Links {
		urls = append(urls, link.URL)
	}

	t.logger.Info("Новые подарки",
		"postID", event.PostID,
		"title", event.Title,
		"sourceURL", event.SourceURL,
		"links", urls,
		"timestamp", event.Timestamp,
	)

	return nil
}
