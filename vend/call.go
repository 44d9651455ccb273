package vend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/s0up4200/vendctl/entity"
	"github.com/s0up4200/vendctl/version"
)

const (
	methodGet    = "get"
	methodPost   = "post"
	methodPut    = "put"
	methodDelete = "delete"
)

// request is everything needed to rebuild a call from scratch on retry.
type request struct {
	endpoint   string
	method     string
	data       any
	resolver   version.Resolver
	version    string
	versionSet bool
}

// Response is a decoded API response.
type Response struct {
	StatusCode int
	Body       []byte
	Value      any
}

// Decode unmarshals the raw body into dest.
func (r *Response) Decode(dest any) error {
	return json.Unmarshal(r.Body, dest)
}

// Call sends a request to endpoint and returns the decoded JSON body.
//
// For get, data is encoded as the query string; it may be a map,
// url.Values, *entity.Properties or a struct with url tags. For post and
// put, non-nil data is sent as a JSON body. A 429 blocks until the
// server's retry-after instant and retries with no attempt limit; cancel
// ctx to give up.
func (c *Client) Call(ctx context.Context, endpoint, method string, data any, opts ...CallOption) (any, error) {
	resp, err := c.CallResponse(ctx, endpoint, method, data, opts...)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// CallResponse is Call returning the raw body and status alongside the
// decoded value.
func (c *Client) CallResponse(ctx context.Context, endpoint, method string, data any, opts ...CallOption) (*Response, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	return c.execute(ctx, request{
		endpoint:   endpoint,
		method:     method,
		data:       data,
		resolver:   c.resolver,
		version:    co.version,
		versionSet: co.versionSet,
	})
}

// LegacyCall sends a request addressed by a legacy version token,
// whatever the client's own regime. Unknown tokens use the 2.0 prefix.
func (c *Client) LegacyCall(ctx context.Context, endpoint, method, token string, data any) (any, error) {
	resp, err := c.LegacyCallResponse(ctx, endpoint, method, token, data)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// LegacyCallResponse is LegacyCall returning the full Response.
func (c *Client) LegacyCallResponse(ctx context.Context, endpoint, method, token string, data any) (*Response, error) {
	return c.execute(ctx, request{
		endpoint:   endpoint,
		method:     method,
		data:       data,
		resolver:   version.Resolver{Regime: version.Legacy},
		version:    token,
		versionSet: true,
	})
}

func (c *Client) execute(ctx context.Context, req request) (*Response, error) {
	for attempt := 1; ; attempt++ {
		resp, retryAt, err := c.attempt(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}

		c.logger.Warn().
			Str("endpoint", req.endpoint).
			Int("attempt", attempt).
			Time("retry_at", retryAt).
			Msg("Rate limited, waiting before retry")

		if err := c.waitUntil(ctx, retryAt); err != nil {
			return nil, fmt.Errorf("waiting out rate limit on %s: %w", req.endpoint, err)
		}
	}
}

// attempt runs one exchange. A nil Response with a nil error means the
// call was rate limited and should be retried at the returned instant.
func (c *Client) attempt(ctx context.Context, req request) (*Response, time.Time, error) {
	v := c.Version()
	if req.versionSet {
		if err := req.resolver.Validate(req.version); err != nil {
			return nil, time.Time{}, err
		}
		v = req.version
	}

	path := req.resolver.Prefix(v) + "/" + strings.TrimLeft(req.endpoint, "/")

	method := strings.ToLower(req.method)
	var body []byte
	switch method {
	case methodGet:
		values, err := encodeQuery(req.data)
		if err != nil {
			return nil, time.Time{}, err
		}
		if len(values) > 0 {
			path += "?" + values.Encode()
		}
	case methodPost, methodPut:
		if !isNil(req.data) {
			encoded, err := encodeBody(req.data)
			if err != nil {
				return nil, time.Time{}, err
			}
			body = encoded
		}
	case methodDelete:
		if !isNil(req.data) {
			c.logger.Debug().Str("path", path).Msg("Ignoring payload on delete request")
		}
	default:
		return nil, time.Time{}, &InvalidMethodError{Method: req.method}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("Making Vend API request")

	raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, time.Time{}, err
	}
	status := c.transport.StatusCode()

	var value any
	if err := json.Unmarshal(raw, &value); err != nil || value == nil {
		return nil, time.Time{}, &UnexpectedNullResultError{StatusCode: status, RawBody: string(raw), Err: err}
	}

	if status == http.StatusTooManyRequests {
		retryAt, err := c.retryAt(value)
		if err != nil {
			return nil, time.Time{}, err
		}
		return nil, retryAt, nil
	}

	if status >= http.StatusBadRequest {
		return nil, time.Time{}, &HTTPError{
			StatusCode: status,
			Message:    errorMessage(value),
			RawBody:    string(raw),
		}
	}

	if appErr := applicationError(value); appErr != nil {
		return nil, time.Time{}, appErr
	}

	c.debug.record(raw, value)

	return &Response{StatusCode: status, Body: raw, Value: value}, time.Time{}, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	switch method {
	case methodGet:
		return c.transport.Get(ctx, path)
	case methodPost:
		return c.transport.Post(ctx, path, body)
	case methodPut:
		return c.transport.Put(ctx, path, body)
	default:
		return c.transport.Delete(ctx, path)
	}
}

func encodeBody(data any) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return body, nil
}

func encodeQuery(data any) (url.Values, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return v, nil
	case map[string]string:
		values := make(url.Values, len(v))
		for key, val := range v {
			values.Set(key, val)
		}
		return values, nil
	case map[string]any:
		values := make(url.Values, len(v))
		for key, val := range v {
			addQueryValue(values, key, entity.ValueOf(val))
		}
		return values, nil
	case *entity.Properties:
		if v == nil {
			return nil, nil
		}
		values := make(url.Values, v.Len())
		for _, key := range v.Keys() {
			val, _ := v.Get(key)
			addQueryValue(values, key, val)
		}
		return values, nil
	}

	if isNil(data) {
		return nil, nil
	}
	values, err := query.Values(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query parameters: %w", err)
	}
	return values, nil
}

// addQueryValue adds v under key. Nested objects use bracket keys
// (filter[sku]=MUG), arrays of scalars repeat the key and objects inside
// arrays are indexed (lines[0][id]=l1).
func addQueryValue(values url.Values, key string, v entity.Value) {
	switch v.Kind() {
	case entity.KindNull:
		values.Add(key, "")
	case entity.KindObject:
		obj, _ := v.AsObject()
		for _, sub := range obj.Keys() {
			val, _ := obj.Get(sub)
			addQueryValue(values, key+"["+sub+"]", val)
		}
	case entity.KindArray:
		items, _ := v.AsArray()
		for i, item := range items {
			if item.Kind() == entity.KindObject || item.Kind() == entity.KindArray {
				addQueryValue(values, key+"["+strconv.Itoa(i)+"]", item)
				continue
			}
			addQueryValue(values, key, item)
		}
	default:
		text, _ := v.Text()
		values.Add(key, text)
	}
}

func isNil(data any) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// errorMessage extracts the "error" field of an error response.
func errorMessage(value any) string {
	if msg, ok := errorField(value, "error"); ok && msg != "" {
		return msg
	}
	return "Unknown error"
}

// applicationError reports an "error" field in a successful response.
// Any non-null value counts, including false and "".
func applicationError(value any) *ApplicationError {
	msg, ok := errorField(value, "error")
	if !ok {
		return nil
	}
	if msg == "" {
		msg = "Unknown error"
	}
	details, _ := errorField(value, "details")
	return &ApplicationError{Message: msg, Details: details}
}

// errorField returns the text of obj[key]: strings as-is, anything else as
// JSON. A missing or null field is absent.
func errorField(value any, key string) (string, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return "", false
	}
	switch v := obj[key].(type) {
	case nil:
		return "", false
	case string:
		return v, true
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v), true
		}
		return string(data), true
	}
}
