package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type Scanner interface {
	Run(ctx context.Context) (*models.RunReport, error)
}

// ScanHandler обслуживает ручной запуск прохода.
type ScanHandler struct {
	scanner Scanner
	logger  *slog.Logger
}

func NewScanHandler(scanner Scanner, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		logger:  logger,
	}
}

// ScanPost запускает проход синхронно. Отключение клиента проход не прерывает.
func (h *ScanHandler) ScanPost(w http.ResponseWriter, r *http.Request) {
	report, err := h.scanner.Run(context.WithoutCancel(r.Context()))
	if err != nil {
		var (
			malformedErr *customerrors.MalformedFeedError
			feedErr      *customerrors.ErrFeedRequest
		)

		switch {
		case errors.Is(err, &customerrors.ErrScanInProgress{}):
			writeError(w, http.StatusConflict, "Проход сканирования уже выполняется", nil)
		case errors.As(err, &malformedErr):
			writeError(w, http.StatusBadGateway, "Лента вернула данные неизвестного формата", err)
		case errors.As(err, &feedErr):
			writeError(w, http.StatusBadGateway, "Лента недоступна", err)
		default:
			h.logger.Error("Ошибка ручного запуска сканирования", "error", err)
			writeError(w, http.StatusInternalServerError, "Ошибка прохода сканирования", err)
		}

		return
	}

	writeReport(w, report)
}
