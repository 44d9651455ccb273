package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	// DefaultHost is the platform domain stores are served under.
	DefaultHost = "vendhq.com"
	// DefaultDomainPrefix is used for authorization before the store is known.
	DefaultDomainPrefix = "secure"
	// DefaultTimeout bounds each token request.
	DefaultTimeout = 30 * time.Second

	connectPath = "/connect"
	tokenPath   = "/api/1.0/token"
)

// Config identifies the OAuth application.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
}

// Token is an issued store credential.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	DomainPrefix string    `json:"domain_prefix,omitempty"`
}

// Expired reports whether the token has an expiry at or before now.
func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// Client runs the authorization-code flow for one application.
type Client struct {
	config     Config
	host       string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates an OAuth client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: client ID is required", ErrInvalidConfig)
	}

	c := &Client{
		config:     cfg,
		host:       DefaultHost,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AuthorizationURL returns the URL to send the user to and the state it
// carries. An empty domainPrefix uses DefaultDomainPrefix; an empty state
// is generated with NewState. Scope is left out when none are configured.
func (c *Client) AuthorizationURL(domainPrefix, state string) (string, string, error) {
	if domainPrefix == "" {
		domainPrefix = DefaultDomainPrefix
	}
	if state == "" {
		var err error
		if state, err = NewState(); err != nil {
			return "", "", err
		}
	}
	return c.endpoint(domainPrefix).AuthCodeURL(state), state, nil
}

// Exchange trades an authorization code for a token.
func (c *Client) Exchange(ctx context.Context, domainPrefix, code string) (*Token, error) {
	if domainPrefix == "" {
		return nil, fmt.Errorf("%w: domain prefix is required", ErrInvalidConfig)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code is required", ErrInvalidConfig)
	}

	cfg := c.endpoint(domainPrefix)
	c.logger.Debug().
		Str("domain_prefix", domainPrefix).
		Str("token_url", cfg.Endpoint.TokenURL).
		Msg("Exchanging authorization code")

	tok, err := cfg.Exchange(c.context(ctx), code)
	if err != nil {
		return nil, classify("exchange", cfg.Endpoint.TokenURL, err)
	}
	return newToken(tok, domainPrefix), nil
}

// Refresh renews a token. The old refresh token is kept when the response
// does not issue a new one.
func (c *Client) Refresh(ctx context.Context, domainPrefix, refreshToken string) (*Token, error) {
	if domainPrefix == "" {
		return nil, fmt.Errorf("%w: domain prefix is required", ErrInvalidConfig)
	}
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrInvalidConfig)
	}

	cfg := c.endpoint(domainPrefix)
	c.logger.Debug().
		Str("domain_prefix", domainPrefix).
		Str("token_url", cfg.Endpoint.TokenURL).
		Msg("Refreshing access token")

	tok, err := cfg.TokenSource(c.context(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, classify("refresh", cfg.Endpoint.TokenURL, err)
	}
	return newToken(tok, domainPrefix), nil
}

func (c *Client) origin(domainPrefix string) string {
	if c.baseURL != "" {
		return strings.TrimRight(c.baseURL, "/")
	}
	return "https://" + domainPrefix + "." + c.host
}

func (c *Client) endpoint(domainPrefix string) *oauth2.Config {
	origin := c.origin(domainPrefix)
	return &oauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		RedirectURL:  c.config.RedirectURI,
		Scopes:       c.config.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   origin + connectPath,
			TokenURL:  origin + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func (c *Client) context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func newToken(tok *oauth2.Token, domainPrefix string) *Token {
	t := &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
		DomainPrefix: domainPrefix,
	}
	if prefix, ok := tok.Extra("domain_prefix").(string); ok && prefix != "" {
		t.DomainPrefix = prefix
	}
	// Some responses carry an absolute "expires" instead of expires_in.
	if t.ExpiresAt.IsZero() {
		if expires, ok := tok.Extra("expires").(float64); ok && expires > 0 {
			t.ExpiresAt = time.Unix(int64(expires), 0)
		}
	}
	return t
}

func classify(op, tokenURL string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		if !json.Valid(retrieveErr.Body) {
			return &InvalidTokenResponseError{Status: status, RawBody: string(retrieveErr.Body), Err: err}
		}
		return &OAuthError{Message: errorMessage(retrieveErr), Code: retrieveErr.ErrorCode, Status: status}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &NetworkError{Op: op, URL: tokenURL, Err: err}
	}

	return &InvalidTokenResponseError{Err: err}
}

func errorMessage(err *oauth2.RetrieveError) string {
	switch {
	case err.ErrorDescription != "":
		return err.ErrorDescription
	case err.ErrorCode != "":
		return err.ErrorCode
	default:
		return "Unknown error"
	}
}
