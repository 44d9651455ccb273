package vend

import (
	"context"
	"time"

	"github.com/s0up4200/vendctl/entity"
	"github.com/s0up4200/vendctl/transport"
)

// Transport performs a single authenticated exchange per call and exposes
// the status code of the latest one.
type Transport interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body []byte) ([]byte, error)
	Put(ctx context.Context, path string, body []byte) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)

	// StatusCode returns the status of the most recent exchange
	StatusCode() int

	// SetDebug toggles verbose exchange logging
	SetDebug(on bool)
}

// Clock is the time source used for rate-limit waits.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done
	Sleep(ctx context.Context, d time.Duration) error
}

// API defines the request operations of a Client
type API interface {
	// Call issues a request against the client's configured version
	Call(ctx context.Context, endpoint, method string, data any, opts ...CallOption) (any, error)

	// CallResponse is Call returning the raw body alongside the decoded value
	CallResponse(ctx context.Context, endpoint, method string, data any, opts ...CallOption) (*Response, error)

	// LegacyCall issues a request addressed by a legacy version token
	LegacyCall(ctx context.Context, endpoint, method, token string, data any) (any, error)

	// ListAll follows pagination cursors until an empty page
	ListAll(ctx context.Context, endpoint string, params *ListParams) ([]*entity.Properties, error)
}

var (
	_ API       = (*Client)(nil)
	_ Transport = (*transport.Transport)(nil)
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
