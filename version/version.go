// Package version maps API version identifiers to URL path prefixes.
//
// Two addressing regimes exist. The dated regime uses "YYYY-MM" identifiers
// that map literally to /api/<version> and are validated everywhere they
// enter the system. The legacy regime maps a closed set of historical
// tokens through a fixed table and never fails.
package version

import (
	"regexp"
)

// Example is a well-formed dated version, quoted in validation errors.
const Example = "2026-04"

// DefaultLegacy is the legacy token used when none is configured.
const DefaultLegacy = "2.0"

var datePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// legacyPrefixes is the fixed legacy table. Tokens outside it resolve to
// the "2.0" prefix.
var legacyPrefixes = map[string]string{
	"0.9":  "/api",
	"2.0":  "/api/2.0",
	"2.0b": "/api/2.0",
	"2.1":  "/api/2.1",
	"3.0":  "/api/3.0",
	"3.0b": "/api/3.0",
}

// Regime selects how version identifiers are validated and resolved.
type Regime int

const (
	// Dated is the YYYY-MM regime.
	Dated Regime = iota
	// Legacy is the dotted token regime.
	Legacy
)

// String returns the regime name.
func (r Regime) String() string {
	switch r {
	case Dated:
		return "dated"
	case Legacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Validate reports whether v is a well-formed dated version.
func Validate(v string) error {
	if !datePattern.MatchString(v) {
		return &InvalidFormatError{Value: v, Example: Example}
	}
	return nil
}

// DatePrefix returns the path prefix for a dated version. It assumes v
// has already been validated.
func DatePrefix(v string) string {
	return "/api/" + v
}

// LegacyPrefix returns the path prefix for a legacy token. Unknown tokens
// fall back to the "2.0" prefix without error.
func LegacyPrefix(token string) string {
	if prefix, ok := legacyPrefixes[token]; ok {
		return prefix
	}
	return legacyPrefixes[DefaultLegacy]
}

// IsKnownLegacy reports whether token is in the legacy table.
func IsKnownLegacy(token string) bool {
	_, ok := legacyPrefixes[token]
	return ok
}

// Resolver applies the rules of a single regime.
type Resolver struct {
	Regime Regime
}

// Validate checks v against the regime's rules. Legacy tokens are never
// rejected.
func (r Resolver) Validate(v string) error {
	if r.Regime == Legacy {
		return nil
	}
	return Validate(v)
}

// Prefix resolves v to a path prefix under the regime.
func (r Resolver) Prefix(v string) string {
	if r.Regime == Legacy {
		return LegacyPrefix(v)
	}
	return DatePrefix(v)
}
