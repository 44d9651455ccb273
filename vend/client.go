package vend

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/vendctl/transport"
	"github.com/s0up4200/vendctl/version"
)

const (
	// DefaultHost is the platform domain stores are served under.
	DefaultHost = "vendhq.com"
	// DefaultAuthScheme prefixes the token in the Authorization header.
	DefaultAuthScheme = "Bearer"
)

// Client is a POS API client bound to one store and one addressing regime.
// It is not safe for concurrent use; give each goroutine its own Client.
type Client struct {
	baseURL   string
	transport Transport
	resolver  version.Resolver
	version   string
	defaults  *version.Defaults

	allowTimeSlip bool
	clock         Clock
	debug         *DebugState
	logger        zerolog.Logger
}

// New creates a client for the store at baseURL authenticating with token.
//
// The dated regime is used unless WithLegacyVersion is given. A version
// passed with WithVersion is validated here; without one the client
// follows its Defaults.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.versionSet && o.legacySet {
		return nil, fmt.Errorf("%w: a dated version and a legacy version cannot both be set", ErrInvalidConfig)
	}

	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		resolver:      version.Resolver{Regime: version.Dated},
		defaults:      o.defaults,
		allowTimeSlip: o.allowTimeSlip,
		clock:         o.clock,
		debug:         o.debug,
		logger:        o.logger,
	}

	switch {
	case o.legacySet:
		c.resolver.Regime = version.Legacy
		c.version = o.legacyVersion
		if c.version == "" {
			c.version = version.DefaultLegacy
		}
	case o.versionSet:
		if err := version.Validate(o.version); err != nil {
			return nil, err
		}
		c.version = o.version
	}

	if c.debug == nil {
		c.debug = NewDebugState()
	}

	c.transport = o.transport
	if c.transport == nil {
		if token == "" {
			return nil, fmt.Errorf("%w: token is required", ErrInvalidConfig)
		}

		trOpts := []transport.Option{
			transport.WithLogger(o.logger),
			transport.WithTimeout(o.timeout),
			transport.WithUserAgent(o.userAgent),
			transport.WithRateLimit(o.requestsPerMinute, o.burst),
		}
		if o.httpClient != nil {
			trOpts = append(trOpts, transport.WithHTTPClient(o.httpClient))
		}

		tr, err := transport.New(c.baseURL, o.authScheme, token, trOpts...)
		if err != nil {
			return nil, err
		}
		c.transport = tr
	}

	if c.debug.Enabled() {
		c.transport.SetDebug(true)
	}

	return c, nil
}

// NewForDomain creates a client for https://<domainPrefix>.vendhq.com.
func NewForDomain(domainPrefix, token string, opts ...Option) (*Client, error) {
	if domainPrefix == "" {
		return nil, fmt.Errorf("%w: domain prefix is required", ErrInvalidConfig)
	}
	return New(StoreURL(domainPrefix), token, opts...)
}

// StoreURL returns the base URL of a store.
func StoreURL(domainPrefix string) string {
	return "https://" + domainPrefix + "." + DefaultHost
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Regime reports which addressing regime the client uses.
func (c *Client) Regime() version.Regime {
	return c.resolver.Regime
}

// Version returns the version used when a call has no override: the
// instance version if one was set, otherwise the shared default.
func (c *Client) Version() string {
	if c.version != "" {
		return c.version
	}
	if c.resolver.Regime == version.Legacy {
		return version.DefaultLegacy
	}
	return c.defaults.Get()
}

// SetVersion changes the instance version. Dated clients reject anything
// that is not YYYY-MM.
func (c *Client) SetVersion(v string) error {
	if err := c.resolver.Validate(v); err != nil {
		return err
	}
	c.version = v
	return nil
}

// SetDebug toggles debug mode for the client and its transport.
func (c *Client) SetDebug(on bool) {
	if on {
		c.debug.Enable()
	} else {
		c.debug.Disable()
	}
	c.transport.SetDebug(on)
}

// Debug returns the client's debug snapshot.
func (c *Client) Debug() *DebugState {
	return c.debug
}
