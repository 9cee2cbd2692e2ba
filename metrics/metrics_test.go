// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch("csv", 10*time.Millisecond, nil)
	m.ObserveFetch("csv", 20*time.Millisecond, nil)
	m.ObserveFetch("csv", time.Second, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sourceFetches.WithLabelValues("csv", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceFetches.WithLabelValues("csv", "error")))
}

func TestCacheLookups(t *testing.T) {
	m := New()

	m.CacheMiss()
	m.CacheHit()
	m.CacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
}

func TestObserveRanking(t *testing.T) {
	m := New()
	m.ObserveRanking(12, 3)

	assert.Equal(t, 12.0, testutil.ToFloat64(m.rankedPairs))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.droppedRows))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "GET /leaderboard", http.StatusOK, 5*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `matchboard_http_requests_total{code="200",method="GET",route="GET /leaderboard"} 1`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFetch("csv", time.Second, nil)
		m.CacheHit()
		m.CacheMiss()
		m.ObserveRanking(1, 1)
		m.ObserveRequest("GET", "/", 200, time.Second)
	})
	assert.Nil(t, m.Registry())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
