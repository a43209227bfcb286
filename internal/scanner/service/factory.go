package service

import (
	"log/slog"

	"github.com/magnusozprime/hero-wars-data/internal/config"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/cache"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/extractor"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/feed"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/notify"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/repository"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/resolver"
)

type ServiceFactory struct {
	config      *config.Config
	logger      *slog.Logger
	repoFactory *repository.Factory
	giftCache   cache.GiftCache
}

// NewServiceFactory принимает giftCache == nil, если кэш подарков выключен.
func NewServiceFactory(
	config *config.Config,
	logger *slog.Logger,
	repoFactory *repository.Factory,
	giftCache cache.GiftCache,
) *ServiceFactory {
	return &ServiceFactory{
		config:      config,
		logger:      logger,
		repoFactory: repoFactory,
		giftCache:   giftCache,
	}
}

func (f *ServiceFactory) CreateScanService(sink notify.Sink) (*ScanService, error) {
	postRepo, err := f.repoFactory.CreatePostRepository()
	if err != nil {
		return nil, err
	}

	giftRepo, err := f.repoFactory.CreateGiftRepository()
	if err != nil {
		return nil, err
	}

	if f.giftCache != nil {
		giftRepo = cache.NewCachedGiftRepository(giftRepo, f.giftCache, f.logger)
	}

	pool := resolver.NewPool(
		resolver.NewResolver(f.config, f.logger),
		f.config.ResolverConcurrency,
		f.config.DeadlinePolicy != config.DeadlineCancel,
	)

	f.logger.Info("Сервис сканирования собран",
		"accessType", f.config.DatabaseAccessType,
		"giftCache", f.giftCache != nil,
		"claimKey", f.config.ClaimQueryKey,
		"deadlinePolicy", f.config.DeadlinePolicy,
		"granularity", f.config.NotificationGranularity,
	)

	return NewScanService(
		feed.NewClient(f.config, f.logger),
		feed.NewNormalizer(f.config.UntitledPostTitle, f.config.PostURLTemplate),
		extractor.NewLinkExtractor(f.config.AllowedDomainList()),
		pool,
		postRepo,
		giftRepo,
		notify.NewBatcher(f.config.ClaimActionLabel),
		sink,
		SettingsFromConfig(f.config),
		f.logger,
	), nil
}
