// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the matchboard API server.

Matchboard ranks nominated pairs. Each row of an external response table
(a Google Sheet fed by a form, a CSV export, or a SQL table) nominates two
people by ID and name. Rows naming the same two people count toward the
same pair regardless of order, and the pairs are ranked by vote count.

# Starting the Server

The server reads CLI flags, environment variables (optionally from a .env
file) and an optional YAML config file:

	SHEET_ID=1AbC... SHEETS_API_KEY=... go run .

Or with flags:

	go run . -p 3318 -source csv -csv https://example.com/export.csv

# Configuration

Source settings (one set, depending on SOURCE_TYPE):

  - SOURCE_TYPE (-source): sheets, csv or sql (default: sheets)
  - SHEET_ID (-sheet-id), WORKSHEET (-worksheet), SHEETS_API_KEY or
    GOOGLE_APPLICATION_CREDENTIALS
  - CSV_LOCATION (-csv): URL or file path
  - DATABASE_URL (-d), DATABASE_TYPE (-t): sqlite or postgres

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - CACHE_TTL (-cache-ttl): How long a fetched table is reused (default: 1h)
  - FETCH_TIMEOUT (-fetch-timeout): Upper bound for one fetch (default: 15s)
  - TOP_N (-top): Leaderboard size (default: 10)
  - FORM_URL (-form-url): Nomination form behind GET /form
  - ADMIN_KEY (-admin-key): Required by POST /refresh when set
  - REFRESH_INTERVAL (-refresh-interval): Minimum time between manual refreshes
  - LOG_LEVEL (-log-level): debug, info, warn or error
  - CONFIG_FILE (-config): YAML file with the same settings

# Architecture

  - source: Sheets, CSV and SQL adapters plus the TTL snapshot cache
  - ranking: Pair canonicalization, grouping, TopN, search and summary
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request metrics, JSON helpers
  - metrics: Prometheus collectors
  - models: Domain and response types
  - auth: Admin key validation
  - db: Connection and schema for the SQL source
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
