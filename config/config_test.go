package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Vend: VendConfig{
			DomainPrefix: "mystore",
			Token:        "token",
			Burst:        1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "Valid defaults",
			modify:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "Valid dated version",
			modify:  func(c *Config) { c.Vend.Version = "2026-04" },
			wantErr: false,
		},
		{
			name:    "Invalid dated version",
			modify:  func(c *Config) { c.Vend.Version = "2026-4" },
			wantErr: true,
		},
		{
			name:    "Legacy version is not format checked",
			modify:  func(c *Config) { c.Vend.LegacyVersion = "9.9" },
			wantErr: false,
		},
		{
			name: "Both versions",
			modify: func(c *Config) {
				c.Vend.Version = "2026-04"
				c.Vend.LegacyVersion = "2.0"
			},
			wantErr: true,
		},
		{
			name:    "Negative timeout",
			modify:  func(c *Config) { c.Vend.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "Negative rate",
			modify:  func(c *Config) { c.Vend.RequestsPerMinute = -1 },
			wantErr: true,
		},
		{
			name: "Rate without burst",
			modify: func(c *Config) {
				c.Vend.RequestsPerMinute = 60
				c.Vend.Burst = 0
			},
			wantErr: true,
		},
		{
			name:    "Invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "Invalid log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "Empty filter preset",
			modify:  func(c *Config) { c.Filters = FilterConfig{"cheap": "  "} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vendctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
vend:
  domain_prefix: mystore
  token: file-token
  version: "2026-04"
  timeout: 45s
  requests_per_minute: 120
  burst: 5
oauth:
  client_id: app-id
  scopes:
    - products:read
    - sales:read
filters:
  cheap: "price < 10"
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mystore", cfg.Vend.DomainPrefix)
	assert.Equal(t, "file-token", cfg.Vend.Token)
	assert.Equal(t, "2026-04", cfg.Vend.Version)
	assert.Equal(t, "Bearer", cfg.Vend.AuthScheme)
	assert.Equal(t, 45*time.Second, cfg.Vend.Timeout)
	assert.Equal(t, float64(120), cfg.Vend.RequestsPerMinute)
	assert.Equal(t, 5, cfg.Vend.Burst)
	assert.Equal(t, "app-id", cfg.OAuth.ClientID)
	assert.Equal(t, []string{"products:read", "sales:read"}, cfg.OAuth.Scopes)
	assert.Equal(t, "price < 10", cfg.Filters["cheap"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Vend.HasStore())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "vend:\n  base_url: https://mystore.vendhq.com\n"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer", cfg.Vend.AuthScheme)
	assert.Equal(t, 30*time.Second, cfg.Vend.Timeout)
	assert.Equal(t, 1, cfg.Vend.Burst)
	assert.False(t, cfg.Vend.AllowTimeSlip)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VENDCTL_VEND_TOKEN", "env-token")
	t.Setenv("VENDCTL_VEND_ALLOW_TIME_SLIP", "true")

	cfg, err := Load(writeConfig(t, "vend:\n  domain_prefix: mystore\n  token: file-token\n"))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Vend.Token)
	assert.True(t, cfg.Vend.AllowTimeSlip)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VENDCTL_VEND_DOMAIN_PREFIX", "envstore")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "envstore", cfg.Vend.DomainPrefix)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "vend:\n  version: april\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestHasStore(t *testing.T) {
	assert.False(t, VendConfig{}.HasStore())
	assert.True(t, VendConfig{BaseURL: "https://x"}.HasStore())
	assert.True(t, VendConfig{DomainPrefix: "x"}.HasStore())
}
