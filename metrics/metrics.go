// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for the leaderboard.
//
// A Metrics value owns its own registry so several instances can coexist
// (one per test). All methods are safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "matchboard"

type Metrics struct {
	registry *prometheus.Registry

	sourceFetches  *prometheus.CounterVec
	fetchLatency   *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	rankedPairs    prometheus.Gauge
	droppedRows    prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New creates a registry with the process and Go runtime collectors plus
// the application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		sourceFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_fetches_total",
				Help:      "Fetches against the external nomination source.",
			},
			[]string{"source", "status"},
		),
		fetchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "source_fetch_duration_seconds",
				Help:      "Latency of fetches against the nomination source.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Snapshot cache lookups by result.",
			},
			[]string{"result"},
		),
		rankedPairs: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ranked_pairs",
			Help:      "Distinct pairs in the last computed ranking.",
		}),
		droppedRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dropped_rows",
			Help:      "Malformed rows skipped in the last computed ranking.",
		}),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveFetch records one source fetch
func (m *Metrics) ObserveFetch(source string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.sourceFetches.WithLabelValues(source, status).Inc()
	m.fetchLatency.WithLabelValues(source).Observe(d.Seconds())
}

// CacheHit records a lookup answered from the cached snapshot
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss records a lookup that needed a refresh
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveRanking records the shape of the last computed ranking
func (m *Metrics) ObserveRanking(pairs, dropped int) {
	if m == nil {
		return
	}
	m.rankedPairs.Set(float64(pairs))
	m.droppedRows.Set(float64(dropped))
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
