package vend

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/vendctl/transport"
	"github.com/s0up4200/vendctl/version"
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	version       string
	versionSet    bool
	legacyVersion string
	legacySet     bool
	defaults      *version.Defaults

	allowTimeSlip bool
	logger        zerolog.Logger
	clock         Clock
	debug         *DebugState

	transport         Transport
	httpClient        transport.Doer
	timeout           time.Duration
	authScheme        string
	userAgent         string
	requestsPerMinute float64
	burst             int
}

func defaultOptions() clientOptions {
	return clientOptions{
		logger:     zerolog.Nop(),
		clock:      systemClock{},
		timeout:    transport.DefaultTimeout,
		authScheme: DefaultAuthScheme,
		userAgent:  transport.DefaultUserAgent,
	}
}

// WithVersion pins the client to a dated version. It is validated when
// the client is built.
func WithVersion(v string) Option {
	return func(o *clientOptions) {
		o.version = v
		o.versionSet = true
	}
}

// WithLegacyVersion selects the legacy regime with the given token.
func WithLegacyVersion(token string) Option {
	return func(o *clientOptions) {
		o.legacyVersion = token
		o.legacySet = true
	}
}

// WithDefaults shares a process-wide default version. Dated clients with
// no version of their own follow it.
func WithDefaults(d *version.Defaults) Option {
	return func(o *clientOptions) {
		o.defaults = d
	}
}

// WithAllowTimeSlip makes a 429 whose retry-after has already passed wait
// a flat DefaultRetryDelay instead of failing.
func WithAllowTimeSlip(allow bool) Option {
	return func(o *clientOptions) {
		o.allowTimeSlip = allow
	}
}

// WithLogger sets the logger for the client and its transport.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithClock replaces the time source used for rate-limit waits.
func WithClock(clock Clock) Option {
	return func(o *clientOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithDebugState shares a debug snapshot between clients.
func WithDebugState(d *DebugState) Option {
	return func(o *clientOptions) {
		if d != nil {
			o.debug = d
		}
	}
}

// WithTransport replaces the transport. The token, HTTP client, timeout,
// auth scheme, user agent and request rate options are then ignored.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(client transport.Doer) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the per-exchange timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithAuthScheme sets the Authorization scheme, "Bearer" by default.
func WithAuthScheme(scheme string) Option {
	return func(o *clientOptions) {
		if scheme != "" {
			o.authScheme = scheme
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithRequestRate paces outgoing requests client-side.
func WithRequestRate(requestsPerMinute float64, burst int) Option {
	return func(o *clientOptions) {
		o.requestsPerMinute = requestsPerMinute
		o.burst = burst
	}
}

// CallOption configures a single call.
type CallOption func(*callOptions)

type callOptions struct {
	version    string
	versionSet bool
}

// AtVersion overrides the version for one call. It is validated under the
// client's regime.
func AtVersion(v string) CallOption {
	return func(o *callOptions) {
		o.version = v
		o.versionSet = true
	}
}
