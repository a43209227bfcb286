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

type GiftRepository struct {
	db        *database.PostgresDB
	sq        sq.StatementBuilderType
	txManager *txs.TxManager
}

func NewGiftRepository(db *database.PostgresDB, txManager *txs.TxManager) *GiftRepository {
	return &GiftRepository{
		db:        db,
		sq:        sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		txManager: txManager,
	}
}

func (r *GiftRepository) GiftExists(ctx context.Context, finalURL string) (bool, error) {
	exists, err := r.exists(ctx, txs.GetQuerier(ctx, r.db.Pool), finalURL)
	if err != nil {
		metrics.RecordDatabaseQuery("gift_exists", metrics.StatusError)
		return false, err
	}

	metrics.RecordDatabaseQuery("gift_exists", metrics.StatusSuccess)

	return exists, nil
}

func (r *GiftRepository) exists(ctx context.Context, querier txs.Querier, finalURL string) (bool, error) {
	query, args, err := r.sq.Select("1").
		From("resolved_gifts").
		Where(sq.Eq{"final_url": finalURL}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, &customerrors.ErrBuildSQLQuery{Operation: "проверка существования подарка", Cause: err}
	}

	var exists bool

	if err := querier.QueryRow(ctx, "SELECT EXISTS("+query+")", args...).Scan(&exists); err != nil {
		return false, &customerrors.ErrSQLExecution{Operation: "проверка существования подарка", Cause: err}
	}

	return exists, nil
}

// InsertGift сериализует вставки одного final_url через pg_advisory_xact_lock.
func (r *GiftRepository) InsertGift(ctx context.Context, gift *models.ResolvedGift) (bool, error) {
	var created bool

	err := r.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		querier := txs.GetQuerier(ctx, r.db.Pool)

		lockQuery, lockArgs, err := r.sq.Select().
			Column(sq.Expr("pg_advisory_xact_lock(hashtext(?))", gift.FinalURL)).
			ToSql()
		if err != nil {
			return &customerrors.ErrBuildSQLQuery{Operation: "блокировка подарка", Cause: err}
		}

		if _, err := querier.Exec(ctx, lockQuery, lockArgs...); err != nil {
			return &customerrors.ErrSQLExecution{Operation: "блокировка подарка", Cause: err}
		}

		exists, err := r.exists(ctx, querier, gift.FinalURL)
		if err != nil {
			return err
		}

		if exists {
			return nil
		}

		query, args, err := r.sq.Insert("resolved_gifts").
			Columns("final_url", "claim_id", "source_post_id", "is_active").
			Values(gift.FinalURL, gift.ClaimID, gift.SourcePostID, gift.IsActive).
			ToSql()
		if err != nil {
			return &customerrors.ErrBuildSQLQuery{Operation: "сохранение подарка", Cause: err}
		}

		if _, err := querier.Exec(ctx, query, args...); err != nil {
			return &customerrors.ErrSQLExecution{Operation: "сохранение подарка", Cause: err}
		}

		created = true

		return nil
	})
	if err != nil {
		metrics.RecordDatabaseQuery("insert_gift", metrics.StatusError)
		return false, err
	}

	metrics.RecordDatabaseQuery("insert_gift", metrics.StatusSuccess)

	return created, nil
}

func (r *GiftRepository) DeactivateGift(ctx context.Context, finalURL string) error {
	query, args, err := r.sq.Update("resolved_gifts").
		Set("is_active", false).
		Where(sq.Eq{"final_url": finalURL}).
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: "деактивация подарка", Cause: err}
	}

	tag, err := txs.GetQuerier(ctx, r.db.Pool).Exec(ctx, query, args...)
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
