package vend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type exchange struct {
	method string
	path   string
	body   []byte
}

type fakeResponse struct {
	status int
	body   string
	err    error
}

// fakeTransport replays responses in order; the last one repeats.
type fakeTransport struct {
	responses []fakeResponse
	exchanges []exchange
	status    int
	debug     bool
}

func newFakeTransport(responses ...fakeResponse) *fakeTransport {
	if len(responses) == 0 {
		responses = []fakeResponse{{status: 200, body: `{"data":[]}`}}
	}
	return &fakeTransport{responses: responses}
}

func (f *fakeTransport) next(method, path string, body []byte) ([]byte, error) {
	f.exchanges = append(f.exchanges, exchange{method: method, path: path, body: body})

	r := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	if r.err != nil {
		f.status = 0
		return nil, r.err
	}
	f.status = r.status
	return []byte(r.body), nil
}

func (f *fakeTransport) Get(_ context.Context, path string) ([]byte, error) {
	return f.next("GET", path, nil)
}

func (f *fakeTransport) Post(_ context.Context, path string, body []byte) ([]byte, error) {
	return f.next("POST", path, body)
}

func (f *fakeTransport) Put(_ context.Context, path string, body []byte) ([]byte, error) {
	return f.next("PUT", path, body)
}

func (f *fakeTransport) Delete(_ context.Context, path string) ([]byte, error) {
	return f.next("DELETE", path, nil)
}

func (f *fakeTransport) StatusCode() int { return f.status }

func (f *fakeTransport) SetDebug(on bool) { f.debug = on }

func (f *fakeTransport) lastPath(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.exchanges, "no exchange was made")
	return f.exchanges[len(f.exchanges)-1].path
}

// fakeClock advances instantly on Sleep.
type fakeClock struct {
	now    time.Time
	slept  time.Duration
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	c.slept += d
	c.sleeps = append(c.sleeps, d)
	return nil
}

const testBaseURL = "https://store.vendhq.com"

func newTestClient(t *testing.T, tr *fakeTransport, opts ...Option) (*Client, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	opts = append([]Option{WithTransport(tr), WithClock(clock)}, opts...)
	c, err := New(testBaseURL, "", opts...)
	require.NoError(t, err)
	return c, clock
}
