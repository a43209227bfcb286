package cache

import (
	"context"
	"log/slog"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/repository"
)

// CachedGiftRepository отвечает на GiftExists из кэша, если подарок там есть.
// Ошибки кэша только логируются, источником истины остаётся репозиторий.
type CachedGiftRepository struct {
	repo   repository.GiftRepository
	cache  GiftCache
	logger *slog.Logger
}

func NewCachedGiftRepository(repo repository.GiftRepository, cache GiftCache, logger *slog.Logger) *CachedGiftRepository {
	return &CachedGiftRepository{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedGiftRepository) GiftExists(ctx context.Context, finalURL string) (bool, error) {
	known, err := r.cache.Known(ctx, finalURL)
	if err != nil {
		r.logger.Warn("Кэш подарков недоступен, читаем из хранилища",
			"finalURL", finalURL,
			"error", err,
		)
	}

	if known {
		return true, nil
	}

	return r.repo.GiftExists(ctx, finalURL)
}

func (r *CachedGiftRepository) InsertGift(ctx context.Context, gift *models.ResolvedGift) (bool, error) {
	created, err := r.repo.InsertGift(ctx, gift)
	if err != nil {
		return false, err
	}

	if err := r.cache.Remember(ctx, gift); err != nil {
		r.logger.Warn("Не удалось сохранить подарок в кэш",
			"finalURL", gift.FinalURL,
			"error", err,
		)
	}

	return created, nil
}

func (r *CachedGiftRepository) DeactivateGift(ctx context.Context, finalURL string) error {
	return r.repo.DeactivateGift(ctx, finalURL)
}
