package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type Scanner interface {
	Run(ctx context.Context) (*models.RunReport, error)
}

// Scheduler запускает проход сканирования с фиксированным интервалом.
// Следующий проход не стартует, пока не закончился предыдущий.
type Scheduler struct {
	scheduler *gocron.Scheduler
	scanner   Scanner
	logger    *slog.Logger
	interval  time.Duration
}

func NewScheduler(scanner Scanner, interval time.Duration, logger *slog.Logger) *Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &Scheduler{
		scheduler: scheduler,
		scanner:   scanner,
		logger:    logger,
		interval:  interval,
	}
}

// Start запускает первый проход сразу. ctx ограничивает все проходы.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Запуск планировщика",
		"interval", s.interval.String(),
	)

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		s.logger.Error("Ошибка при настройке планировщика",
			"error", err,
		)

		return err
	}

	s.scheduler.StartAsync()

	return nil
}

// RunOnce выполняет один проход и логирует его итог.
func (s *Scheduler) RunOnce(ctx context.Context) *models.RunReport {
	if ctx.Err() != nil {
		return nil
	}

	s.logger.Info("Запуск прохода сканирования")

	report, err := s.scanner.Run(ctx)
	if err != nil {
		if errors.Is(err, &customerrors.ErrScanInProgress{}) {
			s.logger.Warn("Проход пропущен: предыдущий ещё выполняется")
			return nil
		}

		s.logger.Error("Ошибка прохода сканирования",
			"error", err,
		)

		return report
	}

	for _, runErr := range report.Errors() {
		s.logger.Debug("Некритичная ошибка прохода", "error", runErr)
	}

	return report
}

func (s *Scheduler) Stop() {
	s.logger.Info("Остановка планировщика")
	s.scheduler.Stop()
}
