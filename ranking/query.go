// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/danielhkuo/matchboard/models"
)

// TopN returns the first n entries of an already sorted ranking
func TopN(entries []models.RankingEntry, n int) []models.RankingEntry {
	if n <= 0 {
		return []models.RankingEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// Search returns the entries whose label contains query, ignoring case.
// An empty query matches nothing. Ranking order is preserved.
func Search(entries []models.RankingEntry, query string) []models.RankingEntry {
	matches := []models.RankingEntry{}

	query = strings.TrimSpace(query)
	if query == "" {
		return matches
	}

	// A Caser is stateful, so each call gets its own
	folder := cases.Fold()
	needle := folder.String(query)

	for _, e := range entries {
		if strings.Contains(folder.String(e.Label), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Summarize computes the aggregate metrics shown above the table
func Summarize(entries []models.RankingEntry) models.Summary {
	s := models.Summary{Pairs: len(entries)}
	for _, e := range entries {
		s.TotalVotes += e.Votes
		if e.Votes > s.MaxVotes {
			s.MaxVotes = e.Votes
		}
	}
	if len(entries) > 0 {
		leader := entries[0]
		s.Leader = &leader
	}
	return s
}

// Popularity is votes relative to the most voted pair, in [0, 1]
func Popularity(votes, maxVotes int) float64 {
	if maxVotes <= 0 {
		return 0.0
	}
	return float64(votes) / float64(maxVotes)
}
