// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/matchboard/cliparse"
	"github.com/danielhkuo/matchboard/db"
	"github.com/danielhkuo/matchboard/models"
)

// TestDBURL is an in-memory SQLite database; one per *sql.DB
const TestDBURL = ":memory:"

// baseSubmittedAt anchors submission times so rows sort in insertion order
var baseSubmittedAt = time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		SourceType:      models.SourceSQL,
		DatabaseURL:     TestDBURL,
		DatabaseType:    db.TypeSQLite,
		CacheTTL:        time.Hour,
		FetchTimeout:    5 * time.Second,
		TopN:            10,
		FormURL:         "https://forms.gle/test-form",
		RefreshInterval: time.Minute,
		LogLevel:        "info",
	}
}

// Record builds a complete raw record
func Record(idA, nameA, idB, nameB, reason string) models.RawRecord {
	return models.RawRecord{
		models.ColumnIDA:    idA,
		models.ColumnNameA:  nameA,
		models.ColumnIDB:    idB,
		models.ColumnNameB:  nameB,
		models.ColumnReason: reason,
	}
}

// InsertNomination stores one record; absent columns are stored as NULL.
// Rows get increasing submission times so the source returns them in order.
func InsertNomination(t *testing.T, conn *sql.DB, rec models.RawRecord) string {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM nomination`).Scan(&n); err != nil {
		t.Fatalf("Failed to count nominations: %v", err)
	}

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO nomination (id, id_ella, nombre_ella, id_el, nombre_el, razon, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id,
		nullable(rec, models.ColumnIDA),
		nullable(rec, models.ColumnNameA),
		nullable(rec, models.ColumnIDB),
		nullable(rec, models.ColumnNameB),
		nullable(rec, models.ColumnReason),
		baseSubmittedAt.Add(time.Duration(n)*time.Second),
	)
	if err != nil {
		t.Fatalf("Failed to insert nomination: %v", err)
	}

	return id
}

func nullable(rec models.RawRecord, column string) sql.NullString {
	v, ok := rec[column]
	return sql.NullString{String: v, Valid: ok}
}

// StubSource is an in-memory source that counts fetches
type StubSource struct {
	mu      sync.Mutex
	Records []models.RawRecord
	Err     error
	Delay   time.Duration
	calls   int
}

func (s *StubSource) Name() string { return "stub" }

func (s *StubSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	s.mu.Lock()
	s.calls++
	records, err, delay := s.Records, s.Err, s.Delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Set replaces the records and error returned by later fetches
func (s *StubSource) Set(records []models.RawRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = records
	s.Err = err
}

// Calls returns how many times Fetch ran
func (s *StubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
