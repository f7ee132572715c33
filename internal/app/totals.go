package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/okian/cubestand/internal/domain/record"
)

// totals memoizes leaderboard sizes for the lifetime of one query. Identical
// lookups issued concurrently share one request; at most limit requests are
// in flight at once.
type totals struct {
	fetcher Fetcher
	sem     *semaphore.Weighted
	group   singleflight.Group

	mu   sync.Mutex
	done map[record.LeaderboardKey]totalResult
}

type totalResult struct {
	n   int
	err error
}

func newTotals(fetcher Fetcher, limit int) *totals {
	if limit <= 0 {
		limit = 1
	}
	return &totals{
		fetcher: fetcher,
		sem:     semaphore.NewWeighted(int64(limit)),
		done:    make(map[record.LeaderboardKey]totalResult),
	}
}

// get returns the size of the leaderboard identified by key.
func (t *totals) get(ctx context.Context, key record.LeaderboardKey) (int, error) {
	t.mu.Lock()
	if r, ok := t.done[key]; ok {
		t.mu.Unlock()
		return r.n, r.err
	}
	t.mu.Unlock()

	v, err, _ := t.group.Do(flightKey(key), func() (interface{}, error) {
		t.mu.Lock()
		if r, ok := t.done[key]; ok {
			t.mu.Unlock()
			return r.n, r.err
		}
		t.mu.Unlock()

		if err := t.sem.Acquire(ctx, 1); err != nil {
			return 0, err
		}
		n, err := t.fetcher.LeaderboardTotal(ctx, key)
		t.sem.Release(1)

		t.mu.Lock()
		t.done[key] = totalResult{n: n, err: err}
		t.mu.Unlock()
		return n, err
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func flightKey(key record.LeaderboardKey) string {
	return fmt.Sprintf("%s/%s/%s", key.Scope, key.Discipline, key.Event)
}
