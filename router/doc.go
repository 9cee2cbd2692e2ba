// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the matchboard API.

# Route Registration

NewRouter creates the configured handler with all endpoints:

	mux := router.NewRouter(cache, cfg, m)

# Endpoints

Health:

	GET /health

Leaderboard (public):

	GET /leaderboard?limit=N - Summary and top pairs
	GET /search?q=name       - Pairs whose label contains the query
	GET /form                - Redirect to the nomination form

Admin (X-Admin-Key when configured):

	POST /refresh - Re-fetch the nomination table

Operations:

	GET /metrics - Prometheus metrics

Application routes are wrapped with request logging and metrics; the whole
mux is wrapped with CORS.
*/
package router
