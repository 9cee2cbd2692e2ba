// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a validated Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Precedence

  1. CLI flags
  2. Environment variables (a .env file is loaded first, without
     overriding variables that are already set)
  3. The YAML file named by -config or CONFIG_FILE
  4. Defaults

# Environment Variables

	PORT             → -p
	SOURCE_TYPE      → -source
	SHEET_ID         → -sheet-id
	WORKSHEET        → -worksheet
	SHEETS_API_KEY   → -sheets-api-key
	CSV_LOCATION     → -csv
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	CACHE_TTL        → -cache-ttl
	FETCH_TIMEOUT    → -fetch-timeout
	TOP_N            → -top
	FORM_URL         → -form-url
	ADMIN_KEY        → -admin-key
	REFRESH_INTERVAL → -refresh-interval
	LOG_LEVEL        → -log-level

GOOGLE_APPLICATION_CREDENTIALS has no flag.

# Validation

Struct tags are checked with go-playground/validator. The source type
decides which settings are required:

  - sheets needs SHEET_ID
  - csv needs CSV_LOCATION
  - sql needs DATABASE_URL
*/
package cliparse
