// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"errors"
	"fmt"
)

// ErrConnection matches every *ConnectionError via errors.Is
var ErrConnection = errors.New("source connection failed")

// ConnectionError reports that the external table could not be read:
// unreachable, misconfigured, or returned something unparsable.
type ConnectionError struct {
	Source string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s source: %v", e.Source, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

func connectionErrorf(source, format string, args ...any) error {
	return &ConnectionError{Source: source, Err: fmt.Errorf(format, args...)}
}
