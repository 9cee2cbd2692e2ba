// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines response and domain types for the API.

# Domain Types

  - RawRecord: one sheet row, header → cell
  - NominationRow: a parsed, trimmed nomination
  - CanonicalPair: order-independent pair key plus display label
  - RankingEntry: one distinct pair with its vote count and rank
  - Summary: totals and leader over a full ranking

# Response Types

  - LeaderboardResponse: metrics plus the top-N table
  - SearchResponse: label matches for a query
  - RefreshResponse: outcome of a forced reload
  - ErrorResponse: error, message, hint

# Constants

Sheet headers:

	ColumnIDA    = "ID Ella"
	ColumnNameA  = "Nombre Ella"
	ColumnIDB    = "ID El"
	ColumnNameB  = "Nombre El"
	ColumnReason = "Porque harian buena pareja?"

Leaderboard status:

	StatusOK    = "ok"
	StatusEmpty = "empty"

Source types:

	SourceSheets = "sheets"
	SourceCSV    = "csv"
	SourceSQL    = "sql"
*/
package models
