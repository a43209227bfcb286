package cache

import (
	"context"
	"crypto/sha1" //nolint:gosec // хеш используется только как ключ
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

// GiftCache хранит final_url уже подтверждённых подарков.
type GiftCache interface {
	Known(ctx context.Context, finalURL string) (bool, error)
	Remember(ctx context.Context, gift *models.ResolvedGift) error
}

type RedisGiftCache struct {
	client    *redis.Client
	ttl       time.Duration
	logger    *slog.Logger
	keyPrefix string
}

func NewRedisGiftCache(
	ctx context.Context,
	redisURL, password string,
	db int,
	ttl time.Duration,
	logger *slog.Logger,
) (*RedisGiftCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ошибка при подключении к Redis: %w", err)
	}

	logger.Info("Соединение с Redis для кэша подарков успешно установлено")

	return &RedisGiftCache{
		client:    client,
		ttl:       ttl,
		logger:    logger,
		keyPrefix: "gift:known:",
	}, nil
}

func (c *RedisGiftCache) key(finalURL string) string {
	sum := sha1.Sum([]byte(finalURL)) //nolint:gosec // см. импорт
	return c.keyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisGiftCache) Known(ctx context.Context, finalURL string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(finalURL)).Result()
	if err != nil {
		return false, fmt.Errorf("ошибка при чтении кэша подарков: %w", err)
	}

	return n > 0, nil
}

func (c *RedisGiftCache) Remember(ctx context.Context, gift *models.ResolvedGift) error {
	if err := c.client.Set(ctx, c.key(gift.FinalURL), gift.ClaimID, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка при записи в кэш подарков: %w", err)
	}

	c.logger.Debug("Подарок добавлен в кэш",
		"finalURL", gift.FinalURL,
		"claimID", gift.ClaimID,
	)

	return nil
}

func (c *RedisGiftCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisGiftCache) Close() error {
	return c.client.Close()
}
