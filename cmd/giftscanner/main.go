package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	"github.com/magnusozprime/hero-wars-data/internal/common/middleware"
	"github.com/magnusozprime/hero-wars-data/internal/config"
	"github.com/magnusozprime/hero-wars-data/internal/database"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/cache"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/handler"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/notify"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/repository"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/scheduler"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/service"
	"github.com/magnusozprime/hero-wars-data/pkg"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сканера: %v\n", err)
		os.Exit(1)
	}
}

//nolint:funlen // Последовательная инициализация всех компонентов.
func run() error {
	cfg := config.LoadConfig()

	appLogger := pkg.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthChecks := map[string]metrics.HealthCheck{}

	db, err := openDatabase(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	if db != nil {
		defer db.Close()

		healthChecks["postgres"] = db.Ping
	}

	var giftCache cache.GiftCache

	if cfg.GiftCacheEnabled {
		redisCache, err := cache.NewRedisGiftCache(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, cfg.RedisCacheTTL, appLogger)
		if err != nil {
			appLogger.Warn("Redis недоступен, продолжаем без кэша подарков",
				"error", err,
			)
		} else {
			defer redisCache.Close()

			giftCache = redisCache
			healthChecks["redis"] = redisCache.Ping
		}
	}

	sink, err := notify.NewNotifierFactory(cfg, appLogger).CreateSink()
	if err != nil {
		appLogger.Error("Ошибка при создании нотификатора",
			"error", err,
		)

		return err
	}

	defer func() {
		if err := sink.Close(); err != nil {
			appLogger.Error("Ошибка при закрытии нотификатора", "error", err)
		}
	}()

	repoFactory := repository.NewFactory(db, cfg, appLogger)

	scanService, err := service.NewServiceFactory(cfg, appLogger, repoFactory, giftCache).CreateScanService(sink)
	if err != nil {
		appLogger.Error("Ошибка при создании сервиса сканирования",
			"error", err,
		)

		return err
	}

	if cfg.RunMode == config.RunModeOnce {
		if _, err := scanService.Run(ctx); err != nil {
			return fmt.Errorf("проход сканирования не выполнен: %w", err)
		}

		return nil
	}

	scanScheduler := scheduler.NewScheduler(scanService, cfg.SchedulerCheckInterval, appLogger)

	go func() {
		if err := metrics.NewMetricsServer(cfg.MetricsPort, appLogger, healthChecks).Start(ctx); err != nil {
			appLogger.Error("Сервер метрик остановлен с ошибкой", "error", err)
		}
	}()

	if err := scanScheduler.Start(ctx); err != nil {
		return err
	}

	defer scanScheduler.Stop()

	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow, appLogger)
	router := handler.NewRouter(
		handler.NewScanHandler(scanService, appLogger),
		handler.NewGiftHandler(scanService, appLogger),
		rateLimiter,
	)

	if err := handler.NewServer(cfg.ScannerServerPort, router, cfg.RunDeadline, appLogger).Start(ctx); err != nil {
		appLogger.Error("Ошибка HTTP сервера сканера", "error", err)
		return err
	}

	appLogger.Info("Сканер остановлен")

	return nil
}

// openDatabase возвращает nil для MEMORY: хранилище живёт только в памяти процесса.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*database.PostgresDB, error) {
	if cfg.DatabaseAccessType == config.MemoryAccess {
		logger.Warn("Используется хранилище в памяти, подарки не переживут перезапуск")
		return nil, nil
	}

	if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Ошибка при применении миграций", "error", err)
		return nil, fmt.Errorf("ошибка миграции базы данных: %w", err)
	}

	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка при подключении к базе данных", "error", err)
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	return db, nil
}
