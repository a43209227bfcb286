package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-faster/jx"

	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
)

const maxRequestBody = 64 << 10

type GiftService interface {
	DeactivateGift(ctx context.Context, finalURL string) error
}

type GiftHandler struct {
	gifts  GiftService
	logger *slog.Logger
}

func NewGiftHandler(gifts GiftService, logger *slog.Logger) *GiftHandler {
	return &GiftHandler{
		gifts:  gifts,
		logger: logger,
	}
}

// DeactivatePost принимает {"finalUrl": "..."}.
func (h *GiftHandler) DeactivatePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Не удалось прочитать тело запроса", err)
		return
	}

	finalURL, err := decodeFinalURL(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректное тело запроса", err)
		return
	}

	if finalURL == "" {
		writeError(w, http.StatusBadRequest, "URL не указан", &customerrors.ErrMissingRequiredField{FieldName: "finalUrl"})
		return
	}

	if err := h.gifts.DeactivateGift(r.Context(), finalURL); err != nil {
		if errors.Is(err, &customerrors.ErrGiftNotFound{}) {
			writeError(w, http.StatusNotFound, "Подарок не найден", err)
			return
		}

		h.logger.Error("Ошибка при деактивации подарка", "finalURL", finalURL, "error", err)
		writeError(w, http.StatusInternalServerError, "Ошибка при деактивации подарка", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeFinalURL(body []byte) (string, error) {
	var finalURL string

	err := jx.DecodeBytes(body).Obj(func(d *jx.Decoder, key string) error {
		if key != "finalUrl" {
			return d.Skip()
		}

		value, err := d.Str()
		if err != nil {
			return err
		}

		finalURL = value

		return nil
	})

	return finalURL, err
}
