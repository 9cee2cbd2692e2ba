// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/danielhkuo/matchboard/models"
)

// SheetsSource reads one worksheet of a Google spreadsheet
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewSheetsSource creates a read-only Sheets API client.
// Authentication comes from opts (API key, credentials file, or the
// application default credentials when none are given).
func NewSheetsSource(ctx context.Context, spreadsheetID, worksheet string, opts ...option.ClientOption) (*SheetsSource, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &ConnectionError{Source: models.SourceSheets, Err: fmt.Errorf("failed to create sheets client: %w", err)}
	}

	return &SheetsSource{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}, nil
}

func (s *SheetsSource) Name() string { return models.SourceSheets }

// Fetch reads every populated row of the worksheet.
// The API omits trailing empty cells, which become absent fields.
func (s *SheetsSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, connectionErrorf(s.Name(), "sheets API returned %d: %w", apiErr.Code, err)
		}
		return nil, connectionErrorf(s.Name(), "failed to read worksheet %q: %w", s.worksheet, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, values := range resp.Values {
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = cellString(v)
		}
		rows[i] = row
	}

	return recordsFromRows(s.Name(), rows), nil
}

// cellString renders a decoded JSON cell value
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
