package sql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	"github.com/magnusozprime/hero-wars-data/internal/database"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type GiftRepository struct {
	db *database.PostgresDB
}

func NewGiftRepository(db *database.PostgresDB) *GiftRepository {
	return &GiftRepository{db: db}
}

func (r *GiftRepository) GiftExists(ctx context.Context, finalURL string) (bool, error) {
	var exists bool

	err := r.db.Pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM resolved_gifts WHERE final_url = $1)", finalURL).Scan(&exists)
	if err != nil {
		metrics.RecordDatabaseQuery("gift_exists", metrics.StatusError)
		return false, &customerrors.ErrSQLExecution{Operation: "проверка существования подарка", Cause: err}
	}

	metrics.RecordDatabaseQuery("gift_exists", metrics.StatusSuccess)

	return exists, nil
}

func (r *GiftRepository) InsertGift(ctx context.Context, gift *models.ResolvedGift) (bool, error) {
	var finalURL string

	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO resolved_gifts (final_url, claim_id, source_post_id, is_active)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (final_url) DO NOTHING
		 RETURNING final_url`,
		gift.FinalURL, gift.ClaimID, gift.SourcePostID, gift.IsActive).Scan(&finalURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.RecordDatabaseQuery("insert_gift", metrics.StatusSuccess)
			return false, nil
		}

		metrics.RecordDatabaseQuery("insert_gift", metrics.StatusError)

		return false, &customerrors.ErrSQLExecution{Operation: "сохранение подарка", Cause: err}
	}

	metrics.RecordDatabaseQuery("insert_gift", metrics.StatusSuccess)

	return true, nil
}

func (r *GiftRepository) DeactivateGift(ctx context.Context, finalURL string) error {
	tag, err := r.db.Pool.Exec(ctx,
		"UPDATE resolved_gifts SET is_active = FALSE WHERE final_url = $1", finalURL)
	if err != nil {
		metrics.RecordDatabaseQuery("deactivate_gift", metrics.StatusError)
		return &customerrors.ErrSQLExecution{Operation: "деактивация подарка", Cause: err}
	}

	metrics.RecordDatabaseQuery("deactivate_gift", metrics.StatusSuccess)

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrGiftNotFound{FinalURL: finalURL}
	}

	return nil
}
