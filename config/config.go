package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/vendctl/version"
)

// EnvPrefix prefixes environment overrides, e.g. VENDCTL_VEND_TOKEN.
const EnvPrefix = "VENDCTL"

// Load loads the configuration from file and environment. An explicit
// configPath must exist; without one a missing file is not an error and
// defaults plus environment are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("vendctl")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".vendctl"))
		}

		v.AddConfigPath("/etc/vendctl/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		switch {
		case missing && configPath != "":
			return nil, fmt.Errorf("config file not found: %w", err)
		case missing:
			// env-only setups are fine
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key is registered
// so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("vend.domain_prefix", "")
	v.SetDefault("vend.base_url", "")
	v.SetDefault("vend.token", "")
	v.SetDefault("vend.auth_scheme", "Bearer")
	v.SetDefault("vend.version", "")
	v.SetDefault("vend.legacy_version", "")
	v.SetDefault("vend.allow_time_slip", false)
	v.SetDefault("vend.debug", false)
	v.SetDefault("vend.timeout", "30s")
	v.SetDefault("vend.requests_per_minute", 0)
	v.SetDefault("vend.burst", 1)

	v.SetDefault("oauth.client_id", "")
	v.SetDefault("oauth.client_secret", "")
	v.SetDefault("oauth.redirect_uri", "")
	v.SetDefault("oauth.scopes", []string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Vend.Version != "" && cfg.Vend.LegacyVersion != "" {
		return fmt.Errorf("vend.version and vend.legacy_version cannot both be set")
	}

	if cfg.Vend.Version != "" {
		if err := version.Validate(cfg.Vend.Version); err != nil {
			return fmt.Errorf("invalid vend.version: %w", err)
		}
	}

	if cfg.Vend.Timeout < 0 {
		return fmt.Errorf("vend.timeout must not be negative: %s", cfg.Vend.Timeout)
	}

	if cfg.Vend.RequestsPerMinute < 0 {
		return fmt.Errorf("vend.requests_per_minute must not be negative: %v", cfg.Vend.RequestsPerMinute)
	}

	if cfg.Vend.RequestsPerMinute > 0 && cfg.Vend.Burst < 1 {
		return fmt.Errorf("vend.burst must be at least 1 when requests_per_minute is set")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expression := range cfg.Filters {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filters.%s has an empty expression", name)
		}
	}

	return nil
}
