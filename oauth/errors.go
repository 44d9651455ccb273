package oauth

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid oauth configuration")
	// ErrInvalidTokenResponse indicates a token endpoint body that could not be decoded
	ErrInvalidTokenResponse = errors.New("invalid token response")
	// ErrOAuth matches every OAuthError
	ErrOAuth = errors.New("oauth error")
)

// OAuthError is an error status returned by the token endpoint.
type OAuthError struct {
	Message string
	Code    string
	Status  int
}

// Error implements the error interface
func (e *OAuthError) Error() string {
	if e.Code != "" && e.Code != e.Message {
		return fmt.Sprintf("oauth error (status %d, %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("oauth error (status %d): %s", e.Status, e.Message)
}

func (e *OAuthError) Is(target error) bool {
	return target == ErrOAuth
}

// InvalidTokenResponseError carries the body that could not be decoded.
type InvalidTokenResponseError struct {
	Status  int
	RawBody string
	Err     error
}

// Error implements the error interface
func (e *InvalidTokenResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (status %d): %v", ErrInvalidTokenResponse, e.Status, e.Err)
	}
	return fmt.Sprintf("%s (status %d)", ErrInvalidTokenResponse, e.Status)
}

func (e *InvalidTokenResponseError) Is(target error) bool {
	return target == ErrInvalidTokenResponse
}

func (e *InvalidTokenResponseError) Unwrap() error {
	return e.Err
}

// NetworkError represents a failure to reach the token endpoint.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s to %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
