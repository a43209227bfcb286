package notify

import (
	"io"
	"log/slog"
	"strings"

	"github.com/magnusozprime/hero-wars-data/internal/common/httputil"
	"github.com/magnusozprime/hero-wars-data/internal/config"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
)

type NotifierType string

const (
	LogNotifier      NotifierType = "LOG"
	TelegramNotifier NotifierType = "TELEGRAM"
	KafkaNotifier    NotifierType = "KAFKA"
	WebhookNotifier  NotifierType = "WEBHOOK"
)

type NotifierFactory struct {
	config *config.Config
	logger *slog.Logger
}

func NewNotifierFactory(cfg *config.Config, logger *slog.Logger) *NotifierFactory {
	return &NotifierFactory{
		config: cfg,
		logger: logger,
	}
}

// CreateSink собирает основной транспорт и, если включено, резервный.
func (f *NotifierFactory) CreateSink() (*Dispatcher, error) {
	var closers []io.Closer

	primary, err := f.CreateTransport(f.config.NotifierTransport)
	if err != nil {
		return nil, err
	}

	if closer, ok := primary.(io.Closer); ok {
		closers = append(closers, closer)
	}

	transport := primary

	if f.config.FallbackEnabled {
		secondary, err := f.CreateTransport(f.config.FallbackTransport)
		if err != nil {
			return nil, err
		}

		if closer, ok := secondary.(io.Closer); ok {
			closers = append(closers, closer)
		}

		transport = NewFallbackTransport(primary, secondary, f.logger)
	}

	f.logger.Info("Создан приёмник уведомлений", "transport", transport.Name())

	return NewDispatcher(transport, f.logger, closers...), nil
}

func (f *NotifierFactory) CreateTransport(kind string) (Transport, error) {
	notifierType := NotifierType(strings.ToUpper(strings.TrimSpace(kind)))

	f.logger.Info("Создание транспорта уведомлений", "type", notifierType)

	switch notifierType {
	case LogNotifier:
		return NewLogTransport(f.logger), nil
	case TelegramNotifier:
		if f.config.TelegramBotToken == "" {
			return nil, &customerrors.ErrMissingRequiredField{FieldName: "TELEGRAM_BOT_TOKEN"}
		}

		return NewTelegramTransport(f.config.TelegramBotToken, "", f.config.TelegramChatIDList(), f.logger)
	case KafkaNotifier:
		return NewKafkaTransport(f.config.KafkaBrokerList(), f.config.TopicGiftNotification,
			f.config.TopicDeadLetterQueue, f.logger), nil
	case WebhookNotifier:
		if f.config.WebhookURL == "" {
			return nil, &customerrors.ErrMissingRequiredField{FieldName: "WEBHOOK_URL"}
		}

		return NewWebhookTransport(f.config.WebhookURL, httputil.SettingsFromConfig(f.config), f.logger), nil
	default:
		return nil, &customerrors.ErrUnknownNotifierType{Transport: kind}
	}
}
