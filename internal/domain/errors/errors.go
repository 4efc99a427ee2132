// Package errors defines the domain error kinds shared between the upstream
// registry client and the use cases that classify its failures.
package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrDuplicateMonitor indicates the registry already has a monitor for
	// the requested handle. Recoverable through the guided resolution flow.
	ErrDuplicateMonitor = stderrors.New("monitor already exists")

	// ErrMonitorNotFound indicates a monitor ID or handle lookup miss.
	ErrMonitorNotFound = stderrors.New("monitor not found")

	// ErrUnauthorized indicates an identity outside the allow-list.
	ErrUnauthorized = stderrors.New("not authorized")
)

// UpstreamError wraps any other registry failure, preserving the upstream
// status and message so it can be reported to the operator verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("registry error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("registry error (status %d)", e.StatusCode)
}

// IsDuplicate reports whether err classifies as a duplicate-monitor conflict.
func IsDuplicate(err error) bool {
	return stderrors.Is(err, ErrDuplicateMonitor)
}

// IsNotFound reports whether err classifies as a lookup miss.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrMonitorNotFound)
}
