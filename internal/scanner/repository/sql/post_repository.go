package sql

import (
	"context"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	"github.com/magnusozprime/hero-wars-data/internal/database"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

const upsertPostQuery = `
INSERT INTO posts (id, title, image_url, url, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    image_url = EXCLUDED.image_url,
    url = EXCLUDED.url,
    scanned_at = now()
RETURNING (xmax = 0)`

type PostRepository struct {
	db *database.PostgresDB
}

func NewPostRepository(db *database.PostgresDB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) UpsertPost(ctx context.Context, post *models.Post) (bool, error) {
	var created bool

	err := r.db.Pool.QueryRow(ctx, upsertPostQuery,
		post.ID, post.Title, nullString(post.ImageURL), post.URL, post.CreatedAt).Scan(&created)
	if err != nil {
		metrics.RecordDatabaseQuery("upsert_post", metrics.StatusError)
		return false, &customerrors.ErrSQLExecution{Operation: "сохранение поста", Cause: err}
	}

	metrics.RecordDatabaseQuery("upsert_post", metrics.StatusSuccess)

	return created, nil
}

func nullString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
