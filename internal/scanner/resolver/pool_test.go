package resolver_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/resolver"
)

type fakeResolver struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
	calls    atomic.Int32
	resolve  func(ctx context.Context, c models.GiftCandidate) *models.Resolution
}

func (f *fakeResolver) Resolve(ctx context.Context, c models.GiftCandidate) *models.Resolution {
	f.calls.Add(1)

	f.mu.Lock()
	f.inFlight++
	f.maxSeen = max(f.maxSeen, f.inFlight)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	return f.resolve(ctx, c)
}

func candidates(urls ...string) []models.GiftCandidate {
	result := make([]models.GiftCandidate, 0, len(urls))
	for _, u := range urls {
		result = append(result, models.GiftCandidate{SourcePostID: "1", RawURL: u})
	}

	return result
}

func TestPool_ResolveAllKeepsOrderAndBound(t *testing.T) {
	fake := &fakeResolver{
		resolve: func(_ context.Context, c models.GiftCandidate) *models.Resolution {
			time.Sleep(20 * time.Millisecond)
			return &models.Resolution{Candidate: c, Status: models.ResolutionValid, FinalURL: c.RawURL}
		},
	}

	pool := resolver.NewPool(fake, 3, true)

	urls := []string{"a", "b", "c", "d", "e", "f", "g"}

	results := pool.ResolveAll(context.Background(), candidates(urls...))

	require.Len(t, results, len(urls))

	for i, res := range results {
		assert.Equal(t, urls[i], res.Candidate.RawURL)
	}

	assert.LessOrEqual(t, fake.maxSeen, 3)
	assert.Equal(t, int32(len(urls)), fake.calls.Load())
}

func TestPool_FailureDoesNotAffectSiblings(t *testing.T) {
	fake := &fakeResolver{
		resolve: func(_ context.Context, c models.GiftCandidate) *models.Resolution {
			if c.RawURL == "slow" {
				time.Sleep(100 * time.Millisecond)
				return &models.Resolution{Candidate: c, Status: models.ResolutionInvalid, Err: context.DeadlineExceeded}
			}

			return &models.Resolution{Candidate: c, Status: models.ResolutionValid, FinalURL: c.RawURL, ClaimID: "X"}
		},
	}

	pool := resolver.NewPool(fake, 2, true)

	results := pool.ResolveAll(context.Background(), candidates("slow", "fast1", "fast2"))

	require.Len(t, results, 3)
	assert.False(t, results[0].Valid())
	assert.True(t, results[1].Valid())
	assert.True(t, results[2].Valid())
}

func TestPool_StopsStartingAfterCancel(t *testing.T) {
	release := make(chan struct{})

	fake := &fakeResolver{
		resolve: func(ctx context.Context, c models.GiftCandidate) *models.Resolution {
			<-release

			return &models.Resolution{Candidate: c, Status: models.ResolutionValid, FinalURL: c.RawURL, Err: ctx.Err()}
		},
	}

	pool := resolver.NewPool(fake, 1, true)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
		time.Sleep(30 * time.Millisecond)
		close(release)
	}()

	results := pool.ResolveAll(ctx, candidates("a", "b", "c"))

	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Candidate.RawURL)
	assert.NoError(t, results[0].Err, "in-flight call keeps running in drain mode")
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestPool_CancelPolicyPropagatesCancellation(t *testing.T) {
	fake := &fakeResolver{
		resolve: func(ctx context.Context, c models.GiftCandidate) *models.Resolution {
			<-ctx.Done()

			return &models.Resolution{Candidate: c, Status: models.ResolutionInvalid, Err: ctx.Err()}
		},
	}

	pool := resolver.NewPool(fake, 1, false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	results := pool.ResolveAll(ctx, candidates("a", "b"))

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
}

func TestPool_EmptyInput(t *testing.T) {
	pool := resolver.NewPool(&fakeResolver{}, 3, true)

	assert.Empty(t, pool.ResolveAll(context.Background(), nil))
}
