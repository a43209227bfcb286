package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/multierr"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaTransport struct {
	producer    MessageWriter
	dlqProducer MessageWriter
	topic       string
	logger      *slog.Logger
}

func NewKafkaTransport(brokers []string, topic, dlqTopic string, logger *slog.Logger) *KafkaTransport {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Logger:       kafka.LoggerFunc(logger.Debug),
			ErrorLogger:  kafka.LoggerFunc(logger.Error),
		}
	}

	return NewKafkaTransportWithWriters(newWriter(topic), newWriter(dlqTopic), topic, logger)
}

func NewKafkaTransportWithWriters(producer, dlqProducer MessageWriter, topic string, logger *slog.Logger) *KafkaTransport {
	return &KafkaTransport{
		producer:    producer,
		dlqProducer: dlqProducer,
		topic:       topic,
		logger:      logger,
	}
}

func (t *KafkaTransport) Name() string {
	return string(KafkaNotifier)
}

// Deliver пишет событие в топик с ключом postId. Неудачная запись дублируется в DLQ.
func (t *KafkaTransport) Deliver(ctx context.Context, event *models.GiftNotification) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации уведомления: %w", err)
	}

	err = t.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.PostID),
		Value: value,
		Time:  time.Now(),
	})
	if err == nil {
		t.logger.Debug("Уведомление отправлено в Kafka",
			"topic", t.topic,
			"postID", event.PostID,
		)

		return nil
	}

	err = fmt.Errorf("ошибка при отправке сообщения в Kafka: %w", err)

	if dlqErr := t.sendToDLQ(ctx, value, err.Error()); dlqErr != nil {
		return multierr.Append(err, dlqErr)
	}

	return err
}

func (t *KafkaTransport) sendToDLQ(ctx context.Context, value []byte, errMsg string) error {
	t.logger.Warn("Отправка уведомления в DLQ", "error", errMsg)

	err := t.dlqProducer.WriteMessages(ctx, kafka.Message{
		Key:   []byte("error"),
		Value: value,
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(errMsg)},
			{Key: "timestamp", Value: []byte(time.Now().Format(time.RFC3339))},
		},
		Time: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("ошибка при отправке сообщения в DLQ: %w", err)
	}

	return nil
}

func (t *KafkaTransport) Close() error {
	return multierr.Combine(t.producer.Close(), t.dlqProducer.Close())
}
