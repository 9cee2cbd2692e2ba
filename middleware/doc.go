// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(handler))

Each request gets an X-Request-ID (kept from the client when present).
Logs request start (method, path, remote) and completion (status, duration_ms).

# Request Metrics

WithMetrics records the count and latency of each request, labelled by the
matched route pattern rather than the raw path:

	middleware.WithMetrics(m, handler)

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type, X-Admin-Key
and X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ErrorResponseWithHint(w, http.StatusServiceUnavailable, "message", "hint")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
