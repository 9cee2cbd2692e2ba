// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/matchboard/models"
)

// Source reads the raw nomination table from an external store
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.RawRecord, error)
}

// recordsFromRows converts a header-first grid into records.
// Cells past the end of a short row are absent, not empty.
func recordsFromRows(source string, rows [][]string) []models.RawRecord {
	records := []models.RawRecord{}
	if len(rows) == 0 {
		return records
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}
	warnMissingColumns(source, header)

	for _, row := range rows[1:] {
		rec := make(models.RawRecord, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			rec[header[i]] = cell
		}
		records = append(records, rec)
	}

	return records
}

// warnMissingColumns logs once per fetch when the header cannot satisfy
// the required columns; every row will then be dropped as malformed.
func warnMissingColumns(source string, header []string) {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range models.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		slog.Warn("nomination table is missing required columns",
			"source", source,
			"missing", missing,
		)
	}
}
