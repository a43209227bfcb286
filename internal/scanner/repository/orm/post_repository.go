package orm

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	"github.com/magnusozprime/hero-wars-data/internal/database"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/pkg/txs"
)

type PostRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewPostRepository(db *database.PostgresDB) *PostRepository {
	return &PostRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostRepository) UpsertPost(ctx context.Context, post *models.Post) (bool, error) {
	var imageURL any
	if post.ImageURL != "" {
		imageURL = post.ImageURL
	}

	query, args, err := r.sq.Insert("posts").
		Columns("id", "title", "image_url", "url", "created_at").
		Values(post.ID, post.Title, imageURL, post.URL, post.CreatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			url = EXCLUDED.url,
			scanned_at = now()
		RETURNING (xmax = 0)`).
		ToSql()
	if err != nil {
		return false, &customerrors.ErrBuildSQLQuery{Operation: "сохранение поста", Cause: err}
	}

	var created bool

	if err := txs.GetQuerier(ctx, r.db.Pool).QueryRow(ctx, query, args...).Scan(&created); err != nil {
		metrics.RecordDatabaseQuery("upsert_post", metrics.StatusError)
		return false, &customerrors.ErrSQLExecution{Operation: "сохранение поста", Cause: err}
	}

	metrics.RecordDatabaseQuery("upsert_post", metrics.StatusSuccess)

	return created, nil
}
