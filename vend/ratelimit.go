package vend

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultRetryDelay is used when a 429 carries no usable retry-after,
	// and as the flat wait when time slip is allowed.
	DefaultRetryDelay = 60 * time.Second

	pollInterval = time.Second

	// maxRetryAfterUnix is 9999-12-31T23:59:59Z.
	maxRetryAfterUnix = 253402300799
)

// retryAfterLayouts are tried in order. Layouts without a zone are UTC.
var retryAfterLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
}

// retryAt computes when a rate-limited call may be retried.
func (c *Client) retryAt(value any) (time.Time, error) {
	now := c.clock.Now()

	at, ok := parseRetryAfter(value)
	if !ok {
		return now.Add(DefaultRetryDelay), nil
	}

	if at.Before(now) {
		if !c.allowTimeSlip {
			return time.Time{}, &RateLimitClockSkewError{RetryAfter: at, Now: now}
		}
		c.logger.Warn().
			Time("retry_after", at).
			Time("now", now).
			Dur("wait", DefaultRetryDelay).
			Msg("Retry-after already passed, allowing for clock skew")
		return now.Add(DefaultRetryDelay), nil
	}

	return at, nil
}

// waitUntil sleeps in steps of at most pollInterval until the clock
// reaches until or ctx is done.
func (c *Client) waitUntil(ctx context.Context, until time.Time) error {
	for {
		remaining := until.Sub(c.clock.Now())
		if remaining <= 0 {
			return nil
		}
		if remaining > pollInterval {
			remaining = pollInterval
		}
		if err := c.clock.Sleep(ctx, remaining); err != nil {
			return err
		}
	}
}

// parseRetryAfter reads the "retry-after" field of a decoded 429 body.
// Strings are parsed as timestamps; numbers as unix seconds.
func parseRetryAfter(value any) (time.Time, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return time.Time{}, false
	}

	switch v := obj["retry-after"].(type) {
	case string:
		return parseTimestamp(v)
	case float64:
		return unixSeconds(v)
	}
	return time.Time{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return unixSeconds(secs)
	}

	for _, layout := range retryAfterLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := http.ParseTime(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// unixSeconds converts secs to a time, rejecting anything outside
// (0, maxRetryAfterUnix].
func unixSeconds(secs float64) (time.Time, bool) {
	if !(secs > 0 && secs <= maxRetryAfterUnix) {
		return time.Time{}, false
	}
	whole := int64(secs)
	frac := secs - float64(whole)
	return time.Unix(whole, int64(frac*float64(time.Second))), true
}
