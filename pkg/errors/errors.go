package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// Privilege errors
	ErrUserCancelled = errors.New("authorization cancelled by user")
	ErrAuthDenied    = errors.New("authorization denied")
	ErrHelperMissing = errors.New("helper binary is not installed")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProtocols     = errors.New("no proxy protocols enabled")
	ErrNoHost          = errors.New("proxy host is empty")

	// Network service errors
	ErrServiceNotFound = errors.New("network service not found")
	ErrNoServices      = errors.New("no network services found")

	// Connectivity test errors
	ErrTestFailed = errors.New("connectivity test failed")
	ErrNoProxyURL = errors.New("no enabled protocol to derive a proxy from")
)

// CommandError represents a failed external command invocation.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("command %v: %v: %s", e.Args, e.Err, e.Output)
	}
	return fmt.Sprintf("command %v: %v", e.Args, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// AuthError represents an elevation failure with the numeric code reported
// by the authorization mechanism.
type AuthError struct {
	Code    int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authorization failed (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("authorization failed (%d)", e.Code)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
