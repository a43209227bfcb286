package resolver

import (
	"context"
	"sync"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

type LinkResolver interface {
	Resolve(ctx context.Context, candidate models.GiftCandidate) *models.Resolution
}

// Pool проверяет кандидатов ограниченным числом воркеров.
type Pool struct {
	resolver    LinkResolver
	concurrency int
	drain       bool
}

// NewPool создаёт пул. При drain=true уже запущенные проверки доживают до своего таймаута
// после отмены ctx, иначе отменяются вместе с ним.
func NewPool(resolver LinkResolver, concurrency int, drain bool) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Pool{
		resolver:    resolver,
		concurrency: concurrency,
		drain:       drain,
	}
}

// ResolveAll возвращает результаты в порядке кандидатов. После отмены ctx новые
// кандидаты не запускаются и в результат не попадают.
func (p *Pool) ResolveAll(ctx context.Context, candidates []models.GiftCandidate) []*models.Resolution {
	if len(candidates) == 0 {
		return nil
	}

	callCtx := ctx
	if p.drain {
		callCtx = context.WithoutCancel(ctx)
	}

	results := make([]*models.Resolution, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup

	for range min(p.concurrency, len(candidates)) {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}

				results[i] = p.resolver.Resolve(callCtx, candidates[i])
			}
		}()
	}

dispatch:
	for i := range candidates {
		if ctx.Err() != nil {
			break
		}

		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	resolved := make([]*models.Resolution, 0, len(results))

	for _, res := range results {
		if res != nil {
			resolved = append(resolved, res)
		}
	}

	return resolved
}
