package transport

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Option configures a Transport.
type Option func(*options)

type options struct {
	httpClient Doer
	timeout    time.Duration
	userAgent  string
	logger     zerolog.Logger
	limiter    *rate.Limiter
}

func defaultOptions() options {
	return options{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		logger:    zerolog.Nop(),
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option
// is ignored when a custom client is supplied.
func WithHTTPClient(client Doer) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout sets the per-exchange timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRateLimit paces exchanges to requestsPerMinute with the given burst.
// A non-positive rate disables pacing.
func WithRateLimit(requestsPerMinute float64, burst int) Option {
	return func(o *options) {
		if requestsPerMinute <= 0 {
			o.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(requestsPerMinute/60.0), burst)
	}
}
