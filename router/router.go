// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/matchboard/cliparse"
	"github.com/danielhkuo/matchboard/handlers"
	"github.com/danielhkuo/matchboard/metrics"
	"github.com/danielhkuo/matchboard/middleware"
)

func NewRouter(cache handlers.Fetcher, cfg cliparse.Config, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	resultsHandler := handlers.NewResultsHandler(cache, cfg, m)

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(m, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Leaderboard (public)
	mux.HandleFunc("GET /leaderboard", wrap(resultsHandler.GetLeaderboard))
	mux.HandleFunc("GET /search", wrap(resultsHandler.Search))
	mux.HandleFunc("GET /form", wrap(resultsHandler.GetForm))

	// Manual refresh (admin key when configured, rate limited)
	mux.HandleFunc("POST /refresh", wrap(resultsHandler.Refresh))

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", m.Handler())

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("matchboard API v1"))
	})

	return middleware.CORS(mux)
}
