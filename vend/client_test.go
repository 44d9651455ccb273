package vend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/vendctl/version"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		opts    []Option
		wantErr error
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: testBaseURL,
			token:   "token",
		},
		{
			name:    "missing URL",
			token:   "token",
			wantErr: ErrInvalidConfig,
			errMsg:  "base URL is required",
		},
		{
			name:    "missing token",
			baseURL: testBaseURL,
			wantErr: ErrInvalidConfig,
			errMsg:  "token is required",
		},
		{
			name:    "invalid version",
			baseURL: testBaseURL,
			token:   "token",
			opts:    []Option{WithVersion("2026-4")},
			wantErr: ErrInvalidVersionFormat,
			errMsg:  "2026-4",
		},
		{
			name:    "both regimes",
			baseURL: testBaseURL,
			token:   "token",
			opts:    []Option{WithVersion("2026-04"), WithLegacyVersion("2.0")},
			wantErr: ErrInvalidConfig,
			errMsg:  "cannot both be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.baseURL, tt.token, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, c.BaseURL())
			assert.Equal(t, version.Dated, c.Regime())
		})
	}
}

func TestNewClientInvalidVersionError(t *testing.T) {
	_, err := New(testBaseURL, "token", WithVersion("April"))

	var formatErr *InvalidVersionFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "April", formatErr.Value)
	assert.Equal(t, version.Example, formatErr.Example)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	with, err := New(testBaseURL+"/", "token")
	require.NoError(t, err)
	without, err := New(testBaseURL, "token")
	require.NoError(t, err)

	assert.Equal(t, without.BaseURL(), with.BaseURL())
	assert.Equal(t, testBaseURL, with.BaseURL())
}

func TestNewForDomain(t *testing.T) {
	c, err := NewForDomain("mystore", "token")
	require.NoError(t, err)
	assert.Equal(t, "https://mystore.vendhq.com", c.BaseURL())

	_, err = NewForDomain("", "token")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultVersion(t *testing.T) {
	defaults, err := version.NewDefaults("2026-01")
	require.NoError(t, err)

	ctx := context.Background()

	followTr := newFakeTransport()
	follower, _ := newTestClient(t, followTr, WithDefaults(defaults))

	pinnedTr := newFakeTransport()
	pinned, _ := newTestClient(t, pinnedTr, WithDefaults(defaults), WithVersion("2025-06"))

	_, err = follower.Call(ctx, "products", "get", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/2026-01/products", followTr.lastPath(t))

	require.NoError(t, defaults.Set("2026-04"))

	_, err = follower.Call(ctx, "products", "get", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/2026-04/products", followTr.lastPath(t), "clients without a version follow the default")

	_, err = pinned.Call(ctx, "products", "get", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/2025-06/products", pinnedTr.lastPath(t), "a construction-time version wins over the default")

	require.NoError(t, follower.SetVersion("2025-01"))
	require.NoError(t, defaults.Set("2026-05"))

	_, err = follower.Call(ctx, "products", "get", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/2025-01/products", followTr.lastPath(t), "a setter version wins over the default")

	assert.Error(t, defaults.Set("26-05"))
	assert.Equal(t, "2026-05", defaults.Get())
}

func TestSetVersion(t *testing.T) {
	c, _ := newTestClient(t, newFakeTransport(), WithVersion("2026-01"))

	err := c.SetVersion("2026-00")
	require.ErrorIs(t, err, ErrInvalidVersionFormat)
	assert.Equal(t, "2026-01", c.Version(), "a rejected version leaves the old one in place")

	require.NoError(t, c.SetVersion("2026-02"))
	assert.Equal(t, "2026-02", c.Version())
}

func TestVersionWithoutDefaults(t *testing.T) {
	c, _ := newTestClient(t, newFakeTransport())
	assert.Equal(t, version.Example, c.Version())
}

func TestLegacyClient(t *testing.T) {
	ctx := context.Background()
	tr := newFakeTransport()
	c, _ := newTestClient(t, tr, WithLegacyVersion(""))

	assert.Equal(t, version.Legacy, c.Regime())
	assert.Equal(t, "2.0", c.Version())

	_, err := c.Call(ctx, "products", "get", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/2.0/products", tr.lastPath(t))

	require.NoError(t, c.SetVersion("3.0b"))
	_, err = c.Call(ctx, "products", "get", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/3.0/products", tr.lastPath(t))

	_, err = c.Call(ctx, "products", "get", nil, AtVersion("9.9"))
	require.NoError(t, err, "legacy overrides are never rejected")
	assert.Equal(t, "/api/2.0/products", tr.lastPath(t))

	_, err = c.Call(ctx, "register_sales", "get", nil, AtVersion("0.9"))
	require.NoError(t, err)
	assert.Equal(t, "/api/register_sales", tr.lastPath(t))
}

func TestSetDebug(t *testing.T) {
	tr := newFakeTransport(fakeResponse{status: 200, body: `{"data":{"id":"1"}}`})
	c, _ := newTestClient(t, tr)

	_, err := c.Call(context.Background(), "products/1", "get", nil)
	require.NoError(t, err)
	assert.Nil(t, c.Debug().LastRawBody(), "nothing is recorded outside debug mode")
	assert.False(t, tr.debug)

	c.SetDebug(true)
	assert.True(t, tr.debug)

	_, err = c.Call(context.Background(), "products/1", "get", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"id":"1"}}`, string(c.Debug().LastRawBody()))
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "1"}}, c.Debug().LastResult())

	c.SetDebug(false)
	assert.False(t, tr.debug)
	assert.NotNil(t, c.Debug().LastRawBody(), "disabling keeps the last snapshot")

	c.SetDebug(true)
	assert.Nil(t, c.Debug().LastRawBody(), "re-enabling starts a fresh snapshot")
}

func TestSharedDebugState(t *testing.T) {
	state := NewDebugState()
	state.Enable()

	trA := newFakeTransport(fakeResponse{status: 200, body: `{"from":"a"}`})
	trB := newFakeTransport(fakeResponse{status: 200, body: `{"from":"b"}`})
	a, _ := newTestClient(t, trA, WithDebugState(state))
	b, _ := newTestClient(t, trB, WithDebugState(state))

	assert.True(t, trA.debug, "an enabled shared state turns on transport debugging")

	ctx := context.Background()
	_, err := a.Call(ctx, "x", "get", nil)
	require.NoError(t, err)
	_, err = b.Call(ctx, "x", "get", nil)
	require.NoError(t, err)

	assert.Equal(t, `{"from":"b"}`, string(state.LastRawBody()), "the snapshot is overwritten by each call")
}
