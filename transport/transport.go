package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single exchange.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when no other agent is configured.
	DefaultUserAgent = "vendctl-go"
)

// Doer is the subset of *http.Client used by Transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport sends authenticated JSON requests to a single host.
// It is owned by one client and is not safe for concurrent use.
type Transport struct {
	baseURL    string
	scheme     string
	credential string
	userAgent  string
	httpClient Doer
	limiter    *rate.Limiter
	logger     zerolog.Logger

	debug      bool
	statusCode int
}

// New creates a Transport for baseURL that authenticates with
// "Authorization: <scheme> <credential>".
func New(baseURL, scheme, credential string, opts ...Option) (*Transport, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if credential == "" {
		return nil, fmt.Errorf("%w: credential is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		scheme:     scheme,
		credential: credential,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		limiter:    o.limiter,
		logger:     o.logger,
	}, nil
}

// BaseURL returns the normalized base URL.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// StatusCode returns the status code of the most recent exchange, or 0 if
// none completed.
func (t *Transport) StatusCode() int {
	return t.statusCode
}

// SetDebug toggles verbose exchange logging.
func (t *Transport) SetDebug(on bool) {
	t.debug = on
}

// Get performs a GET exchange.
func (t *Transport) Get(ctx context.Context, path string) ([]byte, error) {
	return t.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST exchange with an optional JSON body.
func (t *Transport) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return t.do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT exchange with an optional JSON body.
func (t *Transport) Put(ctx context.Context, path string, body []byte) ([]byte, error) {
	return t.do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE exchange.
func (t *Transport) Delete(ctx context.Context, path string) ([]byte, error) {
	return t.do(ctx, http.MethodDelete, path, nil)
}

func (t *Transport) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	url := t.baseURL + path

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, &Error{Method: method, URL: url, Err: err}
		}
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &Error{Method: method, URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", t.scheme+" "+t.credential)
	req.Header.Set("User-Agent", t.userAgent)

	if t.debug {
		t.logger.Debug().
			Str("method", method).
			Str("url", url).
			Str("authorization", t.scheme+" "+mask(t.credential)).
			Str("user_agent", t.userAgent).
			Bytes("body", body).
			Msg("Sending request")
	}

	t.statusCode = 0
	started := time.Now()

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: method, URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	t.statusCode = resp.StatusCode

	if t.debug {
		t.logger.Debug().
			Str("method", method).
			Str("url", url).
			Int("status", resp.StatusCode).
			Str("content_type", resp.Header.Get("Content-Type")).
			Dur("duration", time.Since(started)).
			Bytes("body", respBody).
			Msg("Received response")
	}

	return respBody, nil
}

// mask keeps the last four characters of a credential.
func mask(credential string) string {
	if len(credential) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(credential)-4) + credential[len(credential)-4:]
}
