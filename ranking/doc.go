// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ranking turns raw nomination records into a leaderboard.

# Pair Normalization

Each record names two people by ID and display name. The two (id, name)
tuples are sorted by ID, so a nomination of (A, B) and one of (B, A) share
a key:

	pair := ranking.Canonicalize(row)
	// pair.Key   = "1-2"
	// pair.Label = "Ana & Beto"

# Ranking

Compute parses every record, skips malformed ones, groups by key and sorts
by vote count (descending). Ties keep the order in which each pair was
first nominated:

	res := ranking.Compute(records)
	for _, e := range res.Entries {
		fmt.Println(e.Rank, e.Label, e.Votes)
	}

When the same IDs arrive with different spellings, the label of the first
record seen is kept.

# Queries

	top := ranking.TopN(res.Entries, 10)
	hits := ranking.Search(res.Entries, "ana")
	sum := ranking.Summarize(res.Entries)

Search folds case (Unicode aware) and never treats an empty query as
"match all".

Everything in this package is pure and safe for concurrent use.
*/
package ranking
