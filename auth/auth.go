// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"net/http"
)

// AdminKeyHeader carries the admin key on privileged requests
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrMissingAdminKey = errors.New("admin key required")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks a provided key against the configured one.
// Both are hashed first so the comparison time does not depend on length.
func ValidateAdminKey(provided, expected string) error {
	if provided == "" {
		return ErrMissingAdminKey
	}
	p := sha256.Sum256([]byte(provided))
	e := sha256.Sum256([]byte(expected))
	if !hmac.Equal(p[:], e[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// CheckRequest validates the admin key header of r.
// An empty expected key means the endpoint is open.
func CheckRequest(r *http.Request, expected string) error {
	if expected == "" {
		return nil
	}
	return ValidateAdminKey(r.Header.Get(AdminKeyHeader), expected)
}
