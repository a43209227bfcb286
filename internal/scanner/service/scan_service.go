package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/magnusozprime/hero-wars-data/internal/common/metrics"
	"github.com/magnusozprime/hero-wars-data/internal/config"
	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/dedup"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/feed"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/notify"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/repository"
)

const tracerName = "github.com/magnusozprime/hero-wars-data/internal/scanner/service"

type FeedFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type PostNormalizer interface {
	Normalize(payload []byte) (*feed.Result, error)
}

type LinkExtractor interface {
	Extract(text string) []string
}

type ResolverPool interface {
	ResolveAll(ctx context.Context, candidates []models.GiftCandidate) []*models.Resolution
}

type Settings struct {
	RunDeadline             time.Duration
	PostWorkers             int
	RescanKnownPosts        bool
	NotificationGranularity string
	StoreTimeout            time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		RunDeadline:             cfg.RunDeadline,
		PostWorkers:             cfg.PostWorkers,
		RescanKnownPosts:        cfg.RescanKnownPosts,
		NotificationGranularity: cfg.NotificationGranularity,
		StoreTimeout:            cfg.StoreTimeout,
	}
}

// ScanService выполняет один проход: лента, извлечение ссылок, проверка, дедупликация, уведомления.
type ScanService struct {
	fetcher    FeedFetcher
	normalizer PostNormalizer
	extractor  LinkExtractor
	pool       ResolverPool
	posts      repository.PostRepository
	gifts      repository.GiftRepository
	batcher    *notify.Batcher
	sink       notify.Sink
	settings   Settings
	tracer     trace.Tracer
	logger     *slog.Logger

	running sync.Mutex
}

func NewScanService(
	fetcher FeedFetcher,
	normalizer PostNormalizer,
	extractor LinkExtractor,
	pool ResolverPool,
	posts repository.PostRepository,
	gifts repository.GiftRepository,
	batcher *notify.Batcher,
	sink notify.Sink,
	settings Settings,
	logger *slog.Logger,
) *ScanService {
	if settings.PostWorkers < 1 {
		settings.PostWorkers = 1
	}

	return &ScanService{
		fetcher:    fetcher,
		normalizer: normalizer,
		extractor:  extractor,
		pool:       pool,
		posts:      posts,
		gifts:      gifts,
		batcher:    batcher,
		sink:       sink,
		settings:   settings,
		tracer:     otel.Tracer(tracerName),
		logger:     logger,
	}
}

// Run возвращает ошибку только для фатальных случаев (недоступная или нераспознанная лента,
// уже идущий проход). Остальные ошибки собраны в report.Err().
func (s *ScanService) Run(ctx context.Context) (*models.RunReport, error) {
	if !s.running.TryLock() {
		return nil, &customerrors.ErrScanInProgress{}
	}
	defer s.running.Unlock()

	report := models.NewRunReport(time.Now().UTC())

	ctx, span := s.tracer.Start(ctx, "ScanService.Run")
	defer span.End()

	defer func() {
		report.Update(func(r *models.RunReport) {
			r.FinishedAt = time.Now().UTC()
		})

		metrics.RunDuration.Observe(time.Since(report.StartedAt).Seconds())
	}()

	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	posts, err := s.loadPosts(runCtx, report)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "feed")

		s.logger.Error("Проход остановлен: лента недоступна или имеет неизвестный формат",
			"error", err,
		)

		return report, err
	}

	span.SetAttributes(attribute.Int("posts", len(posts)))

	deduplicator := dedup.NewDeduplicator(s.gifts, s.settings.StoreTimeout, s.logger)
	events := s.processPosts(runCtx, posts, deduplicator, report)

	if runCtx.Err() != nil {
		report.Update(func(r *models.RunReport) {
			r.DeadlineReached = true
		})

		s.logger.Warn("Достигнут дедлайн прохода, новые посты не запускались",
			"deadline", s.settings.RunDeadline,
		)
	}

	if s.settings.NotificationGranularity == config.GranularityRun {
		if event := s.batcher.Combine(events); event != nil {
			s.send(ctx, event, report)
		}
	}

	s.logSummary(report)

	return report, nil
}

func (s *ScanService) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.settings.RunDeadline <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.settings.RunDeadline)
}

func (s *ScanService) loadPosts(ctx context.Context, report *models.RunReport) ([]models.Post, error) {
	ctx, span := s.tracer.Start(ctx, "ScanService.loadPosts")
	defer span.End()

	payload, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.normalizer.Normalize(payload)
	if err != nil {
		return nil, err
	}

	for _, skipped := range result.Skipped {
		s.logger.Warn("Элемент ленты пропущен",
			"index", skipped.Index,
			"reason", skipped.Reason,
		)
	}

	report.Update(func(r *models.RunReport) {
		r.SkippedPosts += len(result.Skipped)
	})

	return result.Posts, nil
}

// processPosts раздаёт посты ограниченному числу воркеров. После дедлайна новые посты
// не стартуют, уже начатые доводятся до конца.
func (s *ScanService) processPosts(
	ctx context.Context,
	posts []models.Post,
	deduplicator *dedup.Deduplicator,
	report *models.RunReport,
) []*models.GiftNotification {
	var (
		mu     sync.Mutex
		events = make([]*models.GiftNotification, len(posts))
		wg     sync.WaitGroup
	)

	postCh := make(chan int)

	for workerID := 1; workerID <= min(s.settings.PostWorkers, max(len(posts), 1)); workerID++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range postCh {
				if ctx.Err() != nil {
					continue
				}

				s.logger.Debug("Воркер обрабатывает пост",
					"worker", workerID,
					"postID", posts[i].ID,
				)

				event := s.processPost(ctx, &posts[i], deduplicator, report)

				mu.Lock()
				events[i] = event
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i := range posts {
		if ctx.Err() != nil {
			break
		}

		select {
		case <-ctx.Done():
			break dispatch
		case postCh <- i:
		}
	}

	close(postCh)
	wg.Wait()

	result := make([]*models.GiftNotification, 0, len(events))

	for _, event := range events {
		if event != nil {
			result = append(result, event)
		}
	}

	return result
}

func (s *ScanService) processPost(
	ctx context.Context,
	post *models.Post,
	deduplicator *dedup.Deduplicator,
	report *models.RunReport,
) *models.GiftNotification {
	ctx, span := s.tracer.Start(ctx, "ScanService.processPost",
		trace.WithAttributes(attribute.String("post.id", post.ID)))
	defer span.End()

	metrics.PostsProcessedTotal.Inc()

	report.Update(func(r *models.RunReport) {
		r.Posts++
	})

	if !s.upsertPost(ctx, post, report) {
		s.logger.Debug("Пост уже сканировался, пропускаем", "postID", post.ID)
		return nil
	}

	links := s.extractor.Extract(post.CanonicalText)
	if len(links) == 0 {
		return nil
	}

	metrics.CandidatesTotal.Add(float64(len(links)))

	candidates := make([]models.GiftCandidate, 0, len(links))
	for _, link := range links {
		candidates = append(candidates, models.GiftCandidate{SourcePostID: post.ID, RawURL: link})
	}

	report.Update(func(r *models.RunReport) {
		r.Candidates += len(candidates)
	})

	resolutions := s.pool.ResolveAll(ctx, candidates)

	var gifts []*models.ResolvedGift

	for _, res := range resolutions {
		if !res.Valid() {
			report.Update(func(r *models.RunReport) {
				r.InvalidLinks++
			})

			if res.Err != nil {
				report.AddError(res.Err)
			}

			continue
		}

		report.Update(func(r *models.RunReport) {
			r.ValidLinks++
		})

		gift, err := deduplicator.Confirm(ctx, res)
		if err != nil {
			report.AddError(err)

			s.logger.Warn("Ошибка хранилища при подтверждении подарка",
				"postID", post.ID,
				"finalURL", res.FinalURL,
				"error", err,
			)

			continue
		}

		if gift != nil {
			gifts = append(gifts, gift)
		}
	}

	span.SetAttributes(
		attribute.Int("post.candidates", len(candidates)),
		attribute.Int("post.gifts", len(gifts)),
	)

	if len(gifts) == 0 {
		return nil
	}

	report.Update(func(r *models.RunReport) {
		r.ConfirmedGifts += len(gifts)
	})

	event := s.batcher.Build(post, gifts)

	if s.settings.NotificationGranularity != config.GranularityRun {
		s.send(ctx, event, report)
	}

	return event
}

// upsertPost возвращает false, если пост уже был сохранён раньше и повторное сканирование выключено.
func (s *ScanService) upsertPost(ctx context.Context, post *models.Post, report *models.RunReport) bool {
	storeCtx, cancel := s.detached(ctx)
	defer cancel()

	created, err := s.posts.UpsertPost(storeCtx, post)
	if err != nil {
		persistenceErr := &customerrors.PersistenceError{Operation: "UpsertPost", Key: post.ID, Cause: err}
		report.AddError(persistenceErr)

		s.logger.Warn("Не удалось сохранить пост", "postID", post.ID, "error", persistenceErr)

		return true
	}

	return created || s.settings.RescanKnownPosts
}

func (s *ScanService) send(ctx context.Context, event *models.GiftNotification, report *models.RunReport) {
	sendCtx, cancel := s.detached(ctx)
	defer cancel()

	s.sink.Send(sendCtx, event)

	report.Update(func(r *models.RunReport) {
		r.Notifications++
	})
}

// DeactivateGift помечает подарок неактивным. Дедупликация по нему продолжает работать.
func (s *ScanService) DeactivateGift(ctx context.Context, finalURL string) error {
	if err := s.gifts.DeactivateGift(ctx, finalURL); err != nil {
		return err
	}

	s.logger.Info("Подарок деактивирован", "finalURL", finalURL)

	return nil
}

// detached отвязывает запись в хранилище и отправку уведомлений от дедлайна прохода.
func (s *ScanService) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)

	if s.settings.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.settings.StoreTimeout)
}

func (s *ScanService) logSummary(report *models.RunReport) {
	errs := report.Errors()

	report.Update(func(r *models.RunReport) {
		s.logger.Info("Проход завершён",
			"posts", r.Posts,
			"skippedPosts", r.SkippedPosts,
			"candidates", r.Candidates,
			"valid", r.ValidLinks,
			"invalid", r.InvalidLinks,
			"confirmed", r.ConfirmedGifts,
			"notifications", r.Notifications,
			"deadlineReached", r.DeadlineReached,
			"errors", len(errs),
		)
	})
}
