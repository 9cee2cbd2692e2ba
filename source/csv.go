// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/danielhkuo/matchboard/models"
)

// CSVSource reads the table from a CSV export: an http(s) URL such as a
// published sheet, or a local file path.
type CSVSource struct {
	location string
	client   *http.Client
}

// NewCSVSource creates a CSV source; a nil client uses http.DefaultClient
func NewCSVSource(location string, client *http.Client) *CSVSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &CSVSource{location: location, client: client}
}

func (s *CSVSource) Name() string { return models.SourceCSV }

func (s *CSVSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	body, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r := csv.NewReader(body)
	r.FieldsPerRecord = -1 // ragged rows are allowed
	rows, err := r.ReadAll()
	if err != nil {
		return nil, connectionErrorf(s.Name(), "failed to parse CSV: %w", err)
	}

	return recordsFromRows(s.Name(), rows), nil
}

func (s *CSVSource) open(ctx context.Context) (io.ReadCloser, error) {
	if !isURL(s.location) {
		f, err := os.Open(s.location)
		if err != nil {
			return nil, connectionErrorf(s.Name(), "failed to open file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, connectionErrorf(s.Name(), "invalid URL: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, connectionErrorf(s.Name(), "request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, connectionErrorf(s.Name(), "unexpected status %s", resp.Status)
	}

	return resp.Body, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
