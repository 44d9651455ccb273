package vend

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/s0up4200/vendctl/version"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid vend client configuration")
	// ErrInvalidVersionFormat matches every InvalidVersionFormatError
	ErrInvalidVersionFormat = version.ErrInvalidFormat
	// ErrInvalidMethod matches every InvalidMethodError
	ErrInvalidMethod = errors.New("invalid HTTP method")
	// ErrUnexpectedNullResult matches every UnexpectedNullResultError
	ErrUnexpectedNullResult = errors.New("unexpected null result")
	// ErrRateLimitClockSkew matches every RateLimitClockSkewError
	ErrRateLimitClockSkew = errors.New("rate limit retry-after is in the past")
	// ErrApplication matches every ApplicationError
	ErrApplication = errors.New("application error")
	// ErrUnauthorized matches HTTPErrors with status 401 or 403
	ErrUnauthorized = errors.New("unauthorized: invalid or expired token")
	// ErrNotFound matches HTTPErrors with status 404
	ErrNotFound = errors.New("resource not found")
	// ErrUnknownResource indicates an entity resource with no endpoints
	ErrUnknownResource = errors.New("unknown resource")
)

// InvalidVersionFormatError reports a dated version that is not YYYY-MM.
type InvalidVersionFormatError = version.InvalidFormatError

// InvalidMethodError reports a verb outside get, post, put and delete.
type InvalidMethodError struct {
	Method string
}

// Error implements the error interface
func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("invalid HTTP method %q: must be one of get, post, put, delete", e.Method)
}

func (e *InvalidMethodError) Is(target error) bool {
	return target == ErrInvalidMethod
}

// UnexpectedNullResultError reports a response body that decoded to null,
// was empty, or was not JSON at all.
type UnexpectedNullResultError struct {
	StatusCode int
	RawBody    string
	Err        error
}

// Error implements the error interface
func (e *UnexpectedNullResultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected null result (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("unexpected null result (status %d)", e.StatusCode)
}

func (e *UnexpectedNullResultError) Is(target error) bool {
	return target == ErrUnexpectedNullResult
}

func (e *UnexpectedNullResultError) Unwrap() error {
	return e.Err
}

// RateLimitClockSkewError reports a 429 whose retry-after instant had
// already passed by the local clock.
type RateLimitClockSkewError struct {
	RetryAfter time.Time
	Now        time.Time
}

// Error implements the error interface
func (e *RateLimitClockSkewError) Error() string {
	return fmt.Sprintf("rate limited until %s but local time is already %s: clocks are out of sync",
		e.RetryAfter.UTC().Format(time.RFC3339), e.Now.UTC().Format(time.RFC3339))
}

func (e *RateLimitClockSkewError) Is(target error) bool {
	return target == ErrRateLimitClockSkew
}

// HTTPError represents a response with status 400 or above.
type HTTPError struct {
	StatusCode int
	Message    string
	RawBody    string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("vend API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.IsNotFound()
	case ErrUnauthorized:
		return e.IsUnauthorized()
	}
	return false
}

// ApplicationError represents an error reported in the body of an
// otherwise successful response.
type ApplicationError struct {
	Message string
	Details string
}

// Error implements the error interface
func (e *ApplicationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("vend application error: %s: %s", e.Message, e.Details)
	}
	return "vend application error: " + e.Message
}

func (e *ApplicationError) Is(target error) bool {
	return target == ErrApplication
}
