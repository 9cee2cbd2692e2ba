// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/matchboard/metrics"
	"github.com/danielhkuo/matchboard/models"
	"github.com/danielhkuo/matchboard/testutil"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, time.February, 14, 9, 0, 0, 0, time.UTC)}
}

func TestCache_ServesWithinTTL(t *testing.T) {
	stub := &testutil.StubSource{Records: []models.RawRecord{testutil.Record("1", "Ana", "2", "Beto", "")}}
	clock := newClock()
	cache := NewCache(stub, time.Hour, WithClock(clock.Now), WithMetrics(metrics.New()))

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.Records, 1)
	assert.Equal(t, clock.Now(), first.FetchedAt)

	clock.Advance(59 * time.Minute)
	stub.Set(nil, nil)

	second, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.Calls())
}

func TestCache_RefetchesAfterTTL(t *testing.T) {
	stub := &testutil.StubSource{Records: []models.RawRecord{testutil.Record("1", "Ana", "2", "Beto", "")}}
	clock := newClock()
	cache := NewCache(stub, time.Hour, WithClock(clock.Now))

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	clock.Advance(time.Hour)
	stub.Set([]models.RawRecord{}, nil)

	snap, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Records)
	assert.Equal(t, 2, stub.Calls())
}

func TestCache_Invalidate(t *testing.T) {
	stub := &testutil.StubSource{}
	cache := NewCache(stub, time.Hour)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stub.Calls())
}

func TestCache_FailureNeverServesStale(t *testing.T) {
	stub := &testutil.StubSource{Records: []models.RawRecord{testutil.Record("1", "Ana", "2", "Beto", "")}}
	clock := newClock()
	cache := NewCache(stub, time.Hour, WithClock(clock.Now))

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	stub.Set(nil, &ConnectionError{Source: "stub", Err: errors.New("quota exceeded")})

	snap, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.Empty(t, snap.Records)

	// Recovers on the next call once the source is back
	stub.Set([]models.RawRecord{}, nil)
	snap, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Records)
}

func TestCache_WrapsPlainErrors(t *testing.T) {
	stub := &testutil.StubSource{Err: errors.New("dial tcp: connection refused")}
	cache := NewCache(stub, time.Hour)

	_, err := cache.Get(context.Background())

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "stub", connErr.Source)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCache_CoalescesConcurrentRefresh(t *testing.T) {
	stub := &testutil.StubSource{
		Records: []models.RawRecord{testutil.Record("1", "Ana", "2", "Beto", "")},
		Delay:   50 * time.Millisecond,
	}
	cache := NewCache(stub, time.Hour)

	const callers = 20
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := cache.Get(context.Background())
			if err == nil && len(snap.Records) != 1 {
				err = errors.New("unexpected snapshot")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, stub.Calls())
}

func TestCache_CallerCancellationDoesNotAbortFetch(t *testing.T) {
	stub := &testutil.StubSource{
		Records: []models.RawRecord{testutil.Record("1", "Ana", "2", "Beto", "")},
		Delay:   50 * time.Millisecond,
	}
	cache := NewCache(stub, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The detached fetch still completes and fills the cache
	snap, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
	assert.Equal(t, 1, stub.Calls())
}

func TestCache_FetchTimeout(t *testing.T) {
	stub := &testutil.StubSource{Delay: time.Second}
	cache := NewCache(stub, time.Hour, WithFetchTimeout(10*time.Millisecond))

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
