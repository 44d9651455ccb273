package cmd

import (
	"fmt"

	"github.com/s0up4200/vendctl/vend"
	"github.com/s0up4200/vendctl/version"
)

// defaults is shared by every client the process builds.
var defaults *version.Defaults

func init() {
	var err error
	defaults, err = version.NewDefaults(version.Example)
	if err != nil {
		panic(fmt.Sprintf("invalid default API version: %v", err))
	}
}

// newClient builds a store client from the loaded configuration. Each
// call returns an independent client.
func newClient(extra ...vend.Option) (*vend.Client, error) {
	if !cfg.Vend.HasStore() {
		return nil, fmt.Errorf("no store configured: set vend.domain_prefix or vend.base_url")
	}
	if cfg.Vend.Token == "" {
		return nil, fmt.Errorf("no token configured: set vend.token or VENDCTL_VEND_TOKEN")
	}

	baseURL := cfg.Vend.BaseURL
	if baseURL == "" {
		baseURL = vend.StoreURL(cfg.Vend.DomainPrefix)
	}

	opts := []vend.Option{
		vend.WithLogger(logger),
		vend.WithDefaults(defaults),
		vend.WithAllowTimeSlip(cfg.Vend.AllowTimeSlip),
		vend.WithTimeout(cfg.Vend.Timeout),
		vend.WithAuthScheme(cfg.Vend.AuthScheme),
		vend.WithUserAgent("vendctl/" + appVersion),
	}
	if cfg.Vend.RequestsPerMinute > 0 {
		opts = append(opts, vend.WithRequestRate(cfg.Vend.RequestsPerMinute, cfg.Vend.Burst))
	}
	switch {
	case cfg.Vend.Version != "":
		opts = append(opts, vend.WithVersion(cfg.Vend.Version))
	case cfg.Vend.LegacyVersion != "":
		opts = append(opts, vend.WithLegacyVersion(cfg.Vend.LegacyVersion))
	}
	opts = append(opts, extra...)

	client, err := vend.New(baseURL, cfg.Vend.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vend client: %w", err)
	}
	client.SetDebug(cfg.Vend.Debug)

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Str("regime", client.Regime().String()).
		Str("version", client.Version()).
		Msg("Vend client ready")

	return client, nil
}
