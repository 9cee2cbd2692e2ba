// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package source reads nomination rows from an external table.

# Sources

Every adapter implements Source and returns one RawRecord per data row,
keyed by the header row:

  - SheetsSource: a worksheet read through the Google Sheets API
  - CSVSource: a CSV export fetched over HTTP or read from disk
  - SQLSource: the nomination table of a SQL database

Failures to reach the table are reported as *ConnectionError, which
matches ErrConnection with errors.Is.

# Cache

Cache keeps the last fetched snapshot for a fixed TTL:

	cache := source.NewCache(src, time.Hour, source.WithFetchTimeout(15*time.Second))
	snap, err := cache.Get(ctx)

Concurrent misses share one fetch. A failed fetch is returned to the caller
and never replaced by an expired snapshot.
*/
package source
