package repository

import (
	"log/slog"

	"github.com/magnusozprime/hero-wars-data/internal/config"
	"github.com/magnusozprime/hero-wars-data/internal/database"
	"github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/repository/memory"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/repository/orm"
	sqlrepo "github.com/magnusozprime/hero-wars-data/internal/scanner/repository/sql"
	"github.com/magnusozprime/hero-wars-data/pkg/txs"
)

type Factory struct {
	db        *database.PostgresDB
	txManager *txs.TxManager
	config    *config.Config
	logger    *slog.Logger
}

// NewFactory принимает nil db только для DATABASE_ACCESS_TYPE=MEMORY.
func NewFactory(db *database.PostgresDB, cfg *config.Config, logger *slog.Logger) *Factory {
	f := &Factory{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if db != nil {
		f.txManager = txs.NewTxManager(db.Pool, logger)
	}

	return f
}

func (f *Factory) CreatePostRepository() (PostRepository, error) {
	switch f.config.DatabaseAccessType {
	case config.SquirrelAccess:
		f.logger.Info("Создание ORM (Squirrel) репозитория постов")
		return orm.NewPostRepository(f.db), nil
	case config.SQLAccess:
		f.logger.Info("Создание SQL репозитория постов")
		return sqlrepo.NewPostRepository(f.db), nil
	case config.MemoryAccess:
		f.logger.Info("Создание in-memory репозитория постов")
		return memory.NewPostRepository(), nil
	default:
		return nil, &errors.ErrUnknownDBAccessType{AccessType: string(f.config.DatabaseAccessType)}
	}
}

func (f *Factory) CreateGiftRepository() (GiftRepository, error) {
	switch f.config.DatabaseAccessType {
	case config.SquirrelAccess:
		f.logger.Info("Создание ORM (Squirrel) репозитория подарков")
		return orm.NewGiftRepository(f.db, f.txManager), nil
	case config.SQLAccess:
		f.logger.Info("Создание SQL репозитория подарков")
		return sqlrepo.NewGiftRepository(f.db), nil
	case config.MemoryAccess:
		f.logger.Info("Создание in-memory репозитория подарков")
		return memory.NewGiftRepository(), nil
	default:
		return nil, &errors.ErrUnknownDBAccessType{AccessType: string(f.config.DatabaseAccessType)}
	}
}
