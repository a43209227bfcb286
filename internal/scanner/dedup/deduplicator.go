package dedup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/repository"
)

const (
	reasonMemo     = "memo"
	reasonStore    = "store"
	reasonConflict = "conflict"
)

// Deduplicator живёт один проход: memo-множество не переносится между проходами.
type Deduplicator struct {
	gifts        repository.GiftRepository
	storeTimeout time.Duration
	logger       *slog.Logger

	mu   sync.Mutex
	memo map[string]struct{}
}

func NewDeduplicator(gifts repository.GiftRepository, storeTimeout time.Duration, logger *slog.Logger) *Deduplicator {
	return &Deduplicator{
		gifts:        gifts,
		storeTimeout: storeTimeout,
		logger:       logger,
		memo:         make(map[string]struct{}),
	}
}

// Confirm возвращает подарок, только если эта вставка создала запись. При ошибке хранилища
// резерв в memo снимается, чтобы ссылку можно было подтвердить из другого поста.
func (d *Deduplicator) Confirm(ctx context.Context, res *models.Resolution) (*models.ResolvedGift, error) {
	if res == nil || !res.Valid() {
		return nil, nil
	}

	if !d.reserve(res.FinalURL) {
		metrics.RecordGiftSuppressed(reasonMemo)
		return nil, nil
	}

	storeCtx, cancel := d.storeContext(ctx)
	defer cancel()

	exists, err := d.gifts.GiftExists(storeCtx, res.FinalURL)
	if err != nil {
		d.release(res.FinalURL)
		return nil, &customerrors.PersistenceError{Operation: "GiftExists", Key: res.FinalURL, Cause: err}
	}

	if exists {
		metrics.RecordGiftSuppressed(reasonStore)

		d.logger.Debug("Подарок уже известен",
			"finalURL", res.FinalURL,
			"postID", res.Candidate.SourcePostID,
		)

		return nil, nil
	}

	gift := models.NewResolvedGift(res)

	created, err := d.gifts.InsertGift(storeCtx, gift)
	if err != nil {
		d.release(res.FinalURL)
		return nil, &customerrors.PersistenceError{Operation: "InsertGift", Key: res.FinalURL, Cause: err}
	}

	if !created {
		metrics.RecordGiftSuppressed(reasonConflict)
		return nil, nil
	}

	metrics.GiftsConfirmedTotal.Inc()

	d.logger.Info("Новый подарок подтверждён",
		"finalURL", gift.FinalURL,
		"claimID", gift.ClaimID,
		"postID", gift.SourcePostID,
	)

	return gift, nil
}

func (d *Deduplicator) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)

	if d.storeTimeout <= 0 {
		return context.WithCancel(detached)
	}

	return context.WithTimeout(detached, d.storeTimeout)
}

func (d *Deduplicator) reserve(finalURL string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, seen := d.memo[finalURL]; seen {
		return false
	}

	d.memo[finalURL] = struct{}{}

	return true
}

func (d *Deduplicator) release(finalURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.memo, finalURL)
}
