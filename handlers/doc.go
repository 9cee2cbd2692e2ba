// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the matchboard API.

# Handler Types

ResultsHandler serves everything derived from the nomination table. It
depends on a Fetcher (the snapshot cache), the config and the metrics:

	resultsHandler := handlers.NewResultsHandler(cache, cfg, m)

Every request ranks the current snapshot from scratch; only the fetched
table is cached.

# Leaderboard

	GET /leaderboard?limit=N → GetLeaderboard

Returns total votes, pair count, the leader and the top N pairs with their
popularity (votes over the leader's votes). An empty table gives status
"empty" and a prompt to nominate.

# Search

	GET /search?q=... → Search

Case-insensitive substring match on the pair label. A blank query matches
nothing.

# Refresh

	POST /refresh → Refresh

Drops the cached snapshot and fetches again. Requires X-Admin-Key when an
admin key is configured and is limited to one call per refresh interval.

# Source Failures

When the source cannot be reached the handlers answer 503 with a hint for
the operator. No partial ranking is ever returned.
*/
package handlers
