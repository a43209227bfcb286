package repository

import (
	"context"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type PostRepository interface {
	// UpsertPost возвращает true, если пост сохранён впервые.
	UpsertPost(ctx context.Context, post *models.Post) (bool, error)
}

type GiftRepository interface {
	GiftExists(ctx context.Context, finalURL string) (bool, error)
	// InsertGift идемпотентна по final_url: false означает, что запись уже была.
	InsertGift(ctx context.Context, gift *models.ResolvedGift) (bool, error)
	DeactivateGift(ctx context.Context, finalURL string) error
}
