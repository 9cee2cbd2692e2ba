package models

import "time"

// Column headers of the nomination sheet (row 1).
// These must match the form's response sheet exactly.
const (
	ColumnIDA    = "ID Ella"
	ColumnNameA  = "Nombre Ella"
	ColumnIDB    = "ID El"
	ColumnNameB  = "Nombre El"
	ColumnReason = "Porque harian buena pareja?"
)

// RequiredColumns lists the headers every nomination needs
var RequiredColumns = []string{ColumnIDA, ColumnNameA, ColumnIDB, ColumnNameB}

// Leaderboard status constants
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
)

// Source type constants
const (
	SourceSheets = "sheets"
	SourceCSV    = "csv"
	SourceSQL    = "sql"
)

// Domain types

// RawRecord is one row of the external table, keyed by header.
// A missing key means the cell was absent.
type RawRecord map[string]string

type NominationRow struct {
	IDA    string `json:"id_a"`
	NameA  string `json:"name_a"`
	IDB    string `json:"id_b"`
	NameB  string `json:"name_b"`
	Reason string `json:"reason,omitempty"`
}

type CanonicalPair struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type RankingEntry struct {
	Rank    int    `json:"rank"` // 1-indexed ranking
	PairKey string `json:"pair_key"`
	Label   string `json:"label"`
	Votes   int    `json:"votes"`
}

type Summary struct {
	TotalVotes int           `json:"total_votes"`
	Pairs      int           `json:"pair_count"`
	MaxVotes   int           `json:"max_votes"`
	Leader     *RankingEntry `json:"leader,omitempty"`
}

// Response types

type LeaderboardEntry struct {
	RankingEntry
	Popularity float64 `json:"popularity"` // votes / max votes, 0..1
}

type LeaderboardResponse struct {
	Status      string             `json:"status"`
	Message     string             `json:"message,omitempty"`
	TotalVotes  int                `json:"total_votes"`
	PairCount   int                `json:"pair_count"`
	Leader      string             `json:"leader,omitempty"`
	LeaderVotes int                `json:"leader_votes"`
	MaxVotes    int                `json:"max_votes"`
	Entries     []LeaderboardEntry `json:"entries"`
	FetchedAt   time.Time          `json:"fetched_at"`
	FetchedAgo  string             `json:"fetched_ago"`
	FormURL     string             `json:"form_url,omitempty"`
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Found   bool               `json:"found"`
	Matches []LeaderboardEntry `json:"matches"`
	Message string             `json:"message,omitempty"`
}

type RefreshResponse struct {
	FetchedAt time.Time `json:"fetched_at"`
	Records   int       `json:"records"`
	Valid     int       `json:"valid"`
	Dropped   int       `json:"dropped"`
	Pairs     int       `json:"pair_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Hint    string `json:"hint,omitempty"`
}
