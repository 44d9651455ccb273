// Package transport performs single authenticated JSON exchanges against
// the POS platform.
//
// A Transport is bound to one base URL and one credential. Each verb
// method sends exactly one request to baseURL+path and returns the raw
// response body; it never inspects or retries on the status code, which
// is left in StatusCode for the caller to read.
//
// # Usage
//
//	tr, err := transport.New("https://store.vendhq.com", "Bearer", token,
//		transport.WithLogger(logger),
//		transport.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	body, err := tr.Get(ctx, "/api/2026-04/products")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(tr.StatusCode(), string(body))
//
// # Debug mode
//
// SetDebug(true) makes every exchange log its request line, headers
// (with the credential masked), bodies, status and duration at debug
// level on the configured zerolog logger.
//
// # Pacing
//
// WithRateLimit installs a token bucket that every exchange waits on
// before it is sent. It is off by default; server-side 429 handling lives
// in the vend package.
package transport
