package memory

import (
	"context"
	"sync"

	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type GiftRepository struct {
	gifts map[string]models.ResolvedGift
	mu    sync.RWMutex
}

func NewGiftRepository() *GiftRepository {
	return &GiftRepository{
		gifts: make(map[string]models.ResolvedGift),
	}
}

func (r *GiftRepository) GiftExists(_ context.Context, finalURL string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.gifts[finalURL]

	return exists, nil
}

func (r *GiftRepository) InsertGift(_ context.Context, gift *models.ResolvedGift) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gifts[gift.FinalURL]; exists {
		return false, nil
	}

	r.gifts[gift.FinalURL] = *gift

	return true, nil
}

func (r *GiftRepository) DeactivateGift(_ context.Context, finalURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gift, exists := r.gifts[finalURL]
	if !exists {
		return &customerrors.ErrGiftNotFound{FinalURL: finalURL}
	}

	gift.IsActive = false
	r.gifts[finalURL] = gift

	return nil
}

func (r *GiftRepository) All() []models.ResolvedGift {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gifts := make([]models.ResolvedGift, 0, len(r.gifts))
	for _, gift := range r.gifts {
		gifts = append(gifts, gift)
	}

	return gifts
}
