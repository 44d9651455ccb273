// Package vend provides a client for the Vend retail POS REST API.
//
// Stores are addressed as https://<domain-prefix>.vendhq.com. Every call
// is routed under a version prefix chosen by one of two regimes: dated
// versions ("2026-04" becomes /api/2026-04) or legacy tokens ("0.9"
// becomes /api, "2.0" becomes /api/2.0). The regime is fixed when the
// client is built.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: builds paths, encodes payloads, classifies responses and
//     waits out rate limits
//   - Transport: the single-exchange HTTP primitive, see package transport
//   - Endpoints: named methods for products, customers, sales and the
//     legacy register_sales collection
//   - Entities: adapters that return package entity wrappers with change
//     tracking
//   - Errors: typed errors for each failure kind
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := vend.NewForDomain("mystore", token,
//		vend.WithVersion("2026-04"),
//		vend.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	result, err := client.Call(ctx, "products", "get", map[string]any{"page_size": 100})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Address one call at another version
//	result, err = client.Call(ctx, "products", "get", nil, vend.AtVersion("2026-01"))
//
//	// Legacy endpoints
//	sales, err := client.LegacyCall(ctx, "register_sales", "get", "0.9", nil)
//
// # Rate limiting
//
// A 429 response is retried transparently. The client waits until the
// instant in the body's "retry-after" field, or 60 seconds when it is
// missing, then reissues the same call. There is no attempt limit, so a
// call against a persistently throttled store blocks until ctx is
// cancelled. A retry-after instant that has already passed means the
// clocks disagree: the call fails with RateLimitClockSkewError unless
// WithAllowTimeSlip is set, in which case it waits a flat 60 seconds.
//
// # Error Handling
//
// The package defines several error types:
//
//   - InvalidVersionFormatError: a dated version that is not YYYY-MM
//   - InvalidMethodError: a verb other than get, post, put or delete
//   - UnexpectedNullResultError: a body that is null, empty or not JSON
//   - RateLimitClockSkewError: a retry-after instant in the past
//   - HTTPError: status 400 or above, with the raw body
//   - ApplicationError: an "error" field in a successful response
//
// Each matches a sentinel with errors.Is:
//
//	if errors.Is(err, vend.ErrNotFound) {
//		// Handle missing resource
//	}
//
// # Concurrency
//
// A Client holds per-call state and must not be shared between
// goroutines. Build one client per goroutine instead.
package vend
