// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/danielhkuo/matchboard/metrics"
	"github.com/danielhkuo/matchboard/models"
)

var tracer = otel.Tracer("github.com/danielhkuo/matchboard/source")

// Snapshot is one fetched copy of the table. It must not be mutated.
type Snapshot struct {
	Records   []models.RawRecord
	FetchedAt time.Time
}

// Cache holds the latest snapshot of a Source for a fixed TTL.
// Concurrent callers share one in-flight refresh.
type Cache struct {
	source       Source
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	metrics      *metrics.Metrics

	mu       sync.RWMutex
	snapshot *Snapshot

	sf singleflight.Group
}

type CacheOption func(*Cache)

// WithClock replaces time.Now (tests)
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// WithFetchTimeout bounds each refresh; zero means no bound
func WithFetchTimeout(d time.Duration) CacheOption {
	return func(c *Cache) { c.fetchTimeout = d }
}

func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

func NewCache(src Source, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		source: src,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached snapshot while it is younger than the TTL and
// refreshes it otherwise. A failed refresh returns the error; an expired
// snapshot is never served in its place.
func (c *Cache) Get(ctx context.Context) (Snapshot, error) {
	if snap, ok := c.fresh(); ok {
		c.metrics.CacheHit()
		return snap, nil
	}
	c.metrics.CacheMiss()

	// The shared fetch must not die with the first caller's request
	detached := context.WithoutCancel(ctx)
	ch := c.sf.DoChan("snapshot", func() (any, error) {
		if snap, ok := c.fresh(); ok {
			return snap, nil
		}
		return c.refresh(detached)
	})

	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, res.Err
		}
		return res.Val.(Snapshot), nil
	}
}

// Invalidate drops the snapshot so the next Get refetches
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

func (c *Cache) fresh() (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil || c.now().Sub(c.snapshot.FetchedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return *c.snapshot, true
}

func (c *Cache) refresh(ctx context.Context) (Snapshot, error) {
	name := c.source.Name()

	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "source.Fetch",
		trace.WithAttributes(attribute.String("source", name)))
	defer span.End()

	start := time.Now()
	records, err := c.source.Fetch(ctx)
	c.metrics.ObserveFetch(name, time.Since(start), err)

	if err != nil {
		var connErr *ConnectionError
		if !errors.As(err, &connErr) {
			err = &ConnectionError{Source: name, Err: err}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("source fetch failed", "source", name, "error", err)
		return Snapshot{}, err
	}

	snap := Snapshot{Records: records, FetchedAt: c.now()}
	span.SetAttributes(attribute.Int("records", len(records)))

	c.mu.Lock()
	c.snapshot = &snap
	c.mu.Unlock()

	slog.Info("source refreshed",
		"source", name,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
		"next_refresh", humanize.Time(snap.FetchedAt.Add(c.ttl)),
	)
	return snap, nil
}
