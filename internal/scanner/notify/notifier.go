package notify

import (
	"context"
	"io"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

// Sink принимает уведомления движка. Ошибки доставки остаются внутри приёмника.
type Sink interface {
	Send(ctx context.Context, event *models.GiftNotification)
}

type Transport interface {
	Name() string
	Deliver(ctx context.Context, event *models.GiftNotification) error
}

type Dispatcher struct {
	transport Transport
	closers   []io.Closer
	logger    *slog.Logger
}

func NewDispatcher(transport Transport, logger *slog.Logger, closers ...io.Closer) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		closers:   closers,
		logger:    logger,
	}
}

func (d *Dispatcher) Send(ctx context.Context, event *models.GiftNotification) {
	if event == nil {
		return
	}

	if err := d.transport.Deliver(ctx, event); err != nil {
		metrics.RecordNotification(d.transport.Name(), metrics.StatusError)

		deliveryErr := &customerrors.NotificationDeliveryError{
			Transport: d.transport.Name(),
			PostID:    event.PostID,
			Cause:     err,
		}

		d.logger.Error("Не удалось доставить уведомление",
			"postID", event.PostID,
			"links", len(event.Links),
			"error", deliveryErr,
		)

		return
	}

	metrics.RecordNotification(d.transport.Name(), metrics.StatusSuccess)

	d.logger.Info("Уведомление доставлено",
		"transport", d.transport.Name(),
		"postID", event.PostID,
		"links", len(event.Links),
	)
}

func (d *Dispatcher) Close() error {
	var err error

	for _, closer := range d.closers {
		err = multierr.Append(err, closer.Close())
	}

	return err
}
