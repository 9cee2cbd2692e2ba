// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAdminKey(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		expected string
		wantErr  error
	}{
		{"valid key", "s3cret", "s3cret", nil},
		{"wrong key", "guess", "s3cret", ErrInvalidAdminKey},
		{"prefix of key", "s3c", "s3cret", ErrInvalidAdminKey},
		{"case differs", "S3CRET", "s3cret", ErrInvalidAdminKey},
		{"missing key", "", "s3cret", ErrMissingAdminKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.provided, tt.expected)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckRequest(t *testing.T) {
	t.Run("open when no key configured", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/refresh", nil)
		assert.NoError(t, CheckRequest(req, ""))
	})

	t.Run("header accepted", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/refresh", nil)
		req.Header.Set(AdminKeyHeader, "s3cret")
		assert.NoError(t, CheckRequest(req, "s3cret"))
	})

	t.Run("header missing", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/refresh", nil)
		assert.ErrorIs(t, CheckRequest(req, "s3cret"), ErrMissingAdminKey)
	})

	t.Run("header wrong", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/refresh", nil)
		req.Header.Set(AdminKeyHeader, "nope")
		assert.ErrorIs(t, CheckRequest(req, "s3cret"), ErrInvalidAdminKey)
	})
}
