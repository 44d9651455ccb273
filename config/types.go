package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Vend    VendConfig    `mapstructure:"vend"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	Filters FilterConfig  `mapstructure:"filters"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// VendConfig holds store connection and request settings
type VendConfig struct {
	DomainPrefix      string        `mapstructure:"domain_prefix"`
	BaseURL           string        `mapstructure:"base_url"`
	Token             string        `mapstructure:"token"`
	AuthScheme        string        `mapstructure:"auth_scheme"`
	Version           string        `mapstructure:"version"`
	LegacyVersion     string        `mapstructure:"legacy_version"`
	AllowTimeSlip     bool          `mapstructure:"allow_time_slip"`
	Debug             bool          `mapstructure:"debug"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute float64       `mapstructure:"requests_per_minute"`
	Burst             int           `mapstructure:"burst"`
}

// HasStore reports whether a store address is configured.
func (c VendConfig) HasStore() bool {
	return c.BaseURL != "" || c.DomainPrefix != ""
}

// OAuthConfig holds the OAuth application credentials
type OAuthConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	RedirectURI  string   `mapstructure:"redirect_uri"`
	Scopes       []string `mapstructure:"scopes"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
