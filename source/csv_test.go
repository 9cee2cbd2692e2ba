// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/matchboard/models"
	"github.com/danielhkuo/matchboard/ranking"
)

const sampleCSV = "\ufeffID Ella,Nombre Ella,ID El,Nombre El,Porque harian buena pareja?\n" +
	"1,Ana,2,Beto,\"Siempre juntos, desde primero\"\n" +
	"2,Beto,1,Ana,Se miran mucho\n" +
	"3,Cara,4\n" +
	"5,Eva,6,Fede,\n"

func TestCSVSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "respuestas.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	records, err := NewCSVSource(path, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Siempre juntos, desde primero", records[0][models.ColumnReason])

	// Short rows leave trailing cells absent
	_, ok := records[2][models.ColumnNameB]
	assert.False(t, ok)

	entries := ranking.Rank(records)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana & Beto", entries[0].Label)
	assert.Equal(t, 2, entries[0].Votes)
	assert.Equal(t, "Eva & Fede", entries[1].Label)
}

func TestCSVSource_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	records, err := NewCSVSource(srv.URL+"/export?format=csv", srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestCSVSource_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID Ella,Nombre Ella,ID El,Nombre El\n"), 0o600))

	records, err := NewCSVSource(path, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCSVSource_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/forbidden":
			http.Error(w, "nope", http.StatusForbidden)
		case "/garbled":
			w.Write([]byte("ID Ella,Nombre Ella\n\"1,Ana\n2,\"Be\"to\n"))
		}
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		location string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.csv")},
		{"non-2xx status", srv.URL + "/forbidden"},
		{"unparsable body", srv.URL + "/garbled"},
		{"unreachable host", "http://127.0.0.1:1/export.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVSource(tt.location, srv.Client()).Fetch(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConnection)

			var connErr *ConnectionError
			require.ErrorAs(t, err, &connErr)
			assert.Equal(t, models.SourceCSV, connErr.Source)
		})
	}
}
