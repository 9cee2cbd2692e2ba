// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"database/sql"

	"github.com/danielhkuo/matchboard/models"
)

// SQLSource reads nominations from the nomination table (see db.CreateSchema)
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

func (s *SQLSource) Name() string { return models.SourceSQL }

// Fetch returns nominations in submission order; NULL columns are absent
func (s *SQLSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id_ella, nombre_ella, id_el, nombre_el, razon
		FROM nomination
		ORDER BY submitted_at, id
	`)
	if err != nil {
		return nil, connectionErrorf(s.Name(), "failed to query nominations: %w", err)
	}
	defer rows.Close()

	records := []models.RawRecord{}
	for rows.Next() {
		var idA, nameA, idB, nameB, reason sql.NullString
		if err := rows.Scan(&idA, &nameA, &idB, &nameB, &reason); err != nil {
			return nil, connectionErrorf(s.Name(), "failed to scan nomination: %w", err)
		}

		rec := models.RawRecord{}
		put(rec, models.ColumnIDA, idA)
		put(rec, models.ColumnNameA, nameA)
		put(rec, models.ColumnIDB, idB)
		put(rec, models.ColumnNameB, nameB)
		put(rec, models.ColumnReason, reason)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, connectionErrorf(s.Name(), "failed to read nominations: %w", err)
	}

	return records, nil
}

func put(rec models.RawRecord, column string, v sql.NullString) {
	if v.Valid {
		rec[column] = v.String
	}
}
