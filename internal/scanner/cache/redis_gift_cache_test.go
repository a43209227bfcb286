package cache_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/cache"
)

func TestRedisGiftCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционный тест в коротком режиме")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)

	defer func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Ошибка при остановке Redis контейнера: %v", err)
		}
	}()

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	giftCache, err := cache.NewRedisGiftCache(ctx, endpoint, "", 0, time.Second, logger)
	require.NoError(t, err)

	defer giftCache.Close()

	gift := &models.ResolvedGift{FinalURL: "https://hero-wars.com/?gift_id=XYZ", ClaimID: "XYZ"}

	known, err := giftCache.Known(ctx, gift.FinalURL)
	require.NoError(t, err)
	assert.False(t, known)

	require.NoError(t, giftCache.Remember(ctx, gift))

	known, err = giftCache.Known(ctx, gift.FinalURL)
	require.NoError(t, err)
	assert.True(t, known)

	require.NoError(t, giftCache.Ping(ctx))

	time.Sleep(2 * time.Second)

	known, err = giftCache.Known(ctx, gift.FinalURL)
	require.NoError(t, err)
	assert.False(t, known, "запись должна истечь по TTL")
}
