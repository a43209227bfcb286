package notify

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/multierr"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

var tokenPattern = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)

type TelegramTransport struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
	logger  *slog.Logger
}

// NewTelegramTransport подключается к Bot API. Пустой endpoint означает api.telegram.org.
func NewTelegramTransport(token, endpoint string, chatIDs []int64, logger *slog.Logger) (*TelegramTransport, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании Telegram клиента: %w", sanitizeError(err))
	}

	if len(chatIDs) == 0 {
		logger.Warn("Не задан ни один чат для Telegram уведомлений")
	}

	return &TelegramTransport{
		bot:     bot,
		chatIDs: chatIDs,
		logger:  logger,
	}, nil
}

func (t *TelegramTransport) Name() string {
	return string(TelegramNotifier)
}

// Deliver отправляет сообщение во все чаты; ошибка одного чата не мешает остальным.
func (t *TelegramTransport) Deliver(ctx context.Context, event *models.GiftNotification) error {
	text := formatMessage(event)

	var errs error

	for _, chatID := range t.chatIDs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = event.ImageURL == ""

		if _, err := t.bot.Send(msg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("чат %d: %w", chatID, sanitizeError(err)))
			continue
		}

		t.logger.Debug("Уведомление отправлено в Telegram",
			"chatID", chatID,
			"postID", event.PostID,
		)
	}

	return errs
}

func sanitizeError(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s", tokenPattern.ReplaceAllString(err.Error(), "bot[MASKED_TOKEN]"))
}
