// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danielhkuo/matchboard/models"
)

const (
	KeySeparator   = "-"
	LabelSeparator = " & "
)

var ErrMalformedRow = errors.New("malformed nomination row")

// Result is the outcome of one ranking computation
type Result struct {
	Entries []models.RankingEntry
	Valid   int // rows that parsed
	Dropped int // malformed rows skipped
}

// ParseRow extracts and trims the nomination fields of a record.
// The four person fields are required; the reason is optional.
func ParseRow(rec models.RawRecord) (models.NominationRow, error) {
	var row models.NominationRow
	fields := []struct {
		column string
		dst    *string
	}{
		{models.ColumnIDA, &row.IDA},
		{models.ColumnNameA, &row.NameA},
		{models.ColumnIDB, &row.IDB},
		{models.ColumnNameB, &row.NameB},
	}

	for _, f := range fields {
		v, ok := rec[f.column]
		if !ok {
			return models.NominationRow{}, fmt.Errorf("%w: missing %q", ErrMalformedRow, f.column)
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return models.NominationRow{}, fmt.Errorf("%w: empty %q", ErrMalformedRow, f.column)
		}
		*f.dst = v
	}

	row.Reason = strings.TrimSpace(rec[models.ColumnReason])
	return row, nil
}

// Canonicalize builds the order-independent key and label for a nomination.
// (a, b) and (b, a) always map to the same key.
func Canonicalize(row models.NominationRow) models.CanonicalPair {
	people := [2]struct{ id, name string }{
		{row.IDA, row.NameA},
		{row.IDB, row.NameB},
	}

	// Stable: a self-nomination keeps row order
	sort.SliceStable(people[:], func(i, j int) bool {
		return people[i].id < people[j].id
	})

	return models.CanonicalPair{
		Key:   people[0].id + KeySeparator + people[1].id,
		Label: people[0].name + LabelSeparator + people[1].name,
	}
}

// Compute tallies nominations per canonical pair and ranks them by votes.
// Malformed records are skipped. Equal vote counts keep the order in which
// each pair first appeared.
func Compute(records []models.RawRecord) Result {
	entries := []models.RankingEntry{}
	index := make(map[string]int)
	var res Result

	for _, rec := range records {
		row, err := ParseRow(rec)
		if err != nil {
			res.Dropped++
			continue
		}
		res.Valid++

		pair := Canonicalize(row)
		if i, ok := index[pair.Key]; ok {
			entries[i].Votes++
			continue
		}

		// First-seen label wins for the group
		index[pair.Key] = len(entries)
		entries = append(entries, models.RankingEntry{
			PairKey: pair.Key,
			Label:   pair.Label,
			Votes:   1,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Votes > entries[j].Votes
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	res.Entries = entries
	return res
}

// Rank returns only the ordered entries of Compute
func Rank(records []models.RawRecord) []models.RankingEntry {
	return Compute(records).Entries
}
