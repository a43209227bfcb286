package txs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

type TxManager struct {
	db      Beginner
	options pgx.TxOptions
	logger  *slog.Logger
}

func NewTxManager(db Beginner, logger *slog.Logger) *TxManager {
	return &TxManager{
		db:      db,
		options: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
		logger:  logger,
	}
}

// WithTransaction выполняет fn в одной транзакции. Вложенный вызов переиспользует уже открытую транзакцию.
func (t *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := t.db.BeginTx(ctx, t.options)
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("Паника внутри транзакции, откатываем", "panic", r)

			_ = tx.Rollback(context.WithoutCancel(ctx))

			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			t.logger.Warn("Не удалось откатить транзакцию", "error", rbErr)
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}

		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}
