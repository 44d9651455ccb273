package vend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

type storeServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newStoreServer(t *testing.T, handler http.HandlerFunc) *storeServer {
	t.Helper()
	s := &storeServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(body),
		})
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func newServerClient(t *testing.T, s *storeServer, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop()), WithVersion("2026-01")}, opts...)
	c, err := New(s.URL, "test-token", opts...)
	require.NoError(t, err)
	return c
}

func TestProductsOverHTTP(t *testing.T) {
	s := newStoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"p1","name":"Mug"},{"id":"p2","name":"Plate"}],"version":{"min":1,"max":2}}`))
	})
	c := newServerClient(t, s)

	products, err := c.ListProducts(context.Background(), &ListParams{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Mug", products[0].Name())
	assert.Equal(t, "p2", products[1].ID())

	require.Len(t, s.requests, 1)
	req := s.requests[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/api/2026-01/products", req.path)
	assert.Equal(t, "page_size=2", req.query)
	assert.Equal(t, "Bearer test-token", req.auth)
}

func TestListAllFollowsCursor(t *testing.T) {
	pages := map[string]string{
		"":  `{"data":[{"id":"a"},{"id":"b"}],"version":{"min":1,"max":10}}`,
		"10": `{"data":[{"id":"c"}],"version":{"min":11,"max":20}}`,
		"20": `{"data":[],"version":{"min":0,"max":0}}`,
	}
	s := newStoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("after")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"bad cursor"}`))
			return
		}
		w.Write([]byte(body))
	})
	c := newServerClient(t, s)

	items, err := c.ListAll(context.Background(), "products", nil)
	require.NoError(t, err)
	require.Len(t, items, 3)

	var ids []string
	for _, item := range items {
		id, _ := item.String("id")
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.Len(t, s.requests, 3)
	assert.Equal(t, "page_size="+strconv.Itoa(DefaultPageSize), s.requests[0].query)
	assert.Contains(t, s.requests[1].query, "after=10")
	assert.Contains(t, s.requests[2].query, "after=20")
}

func TestListAllStopsWhenCursorStalls(t *testing.T) {
	s := newStoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"a"}],"version":{"min":1,"max":5}}`))
	})
	c := newServerClient(t, s)

	items, err := c.ListAll(context.Background(), "customers", &ListParams{PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, s.requests, 2)
}

func TestProductSaveSendsChanges(t *testing.T) {
	s := newStoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"data":{"id":"p1","name":"Mug","sku":"MUG-1","price_excluding_tax":12.5}}`))
		case http.MethodPut:
			w.Write([]byte(`{"data":{"id":"p1","name":"Big Mug","sku":"MUG-1","price_excluding_tax":12.5,"version":7}}`))
		}
	})
	c := newServerClient(t, s)
	ctx := context.Background()

	product, err := c.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, product.HasChanges())
	assert.Equal(t, 12.5, product.Price())

	product.SetName("Big Mug")
	require.NoError(t, product.Save(ctx))

	require.Len(t, s.requests, 2)
	put := s.requests[1]
	assert.Equal(t, http.MethodPut, put.method)
	assert.Equal(t, "/api/2026-01/products/p1", put.path)
	assert.JSONEq(t, `{"id":"p1","name":"Big Mug"}`, put.body)

	assert.False(t, product.HasChanges())
	v, ok := product.Get("version")
	require.True(t, ok)
	assert.Equal(t, float64(7), v.Interface())

	require.NoError(t, product.Save(ctx))
	assert.Len(t, s.requests, 2, "saving an unchanged object sends nothing")
}

func TestCustomerCreate(t *testing.T) {
	s := newStoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"c9","first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}}`))
	})
	c := newServerClient(t, s)

	customer := c.NewCustomer()
	customer.SetFirstName("Ada")
	customer.SetLastName("Lovelace")
	customer.SetEmail("ada@example.com")
	require.NoError(t, customer.Save(context.Background()))

	require.Len(t, s.requests, 1)
	post := s.requests[0]
	assert.Equal(t, http.MethodPost, post.method)
	assert.Equal(t, "/api/2026-01/customers", post.path)
	assert.Equal(t, `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`, post.body)

	assert.Equal(t, "c9", customer.ID())
	assert.Equal(t, "Ada Lovelace", customer.Name())
}

func TestRegisterSalesUsesLegacyPath(t *testing.T) {
	s := newStoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"register_sales":[{"id":"s1","invoice_number":"1001"}]}`))
	})
	c := newServerClient(t, s)

	resp, err := c.RegisterSales(context.Background(), &RegisterSaleParams{Status: []string{"CLOSED"}})
	require.NoError(t, err)

	items, err := resp.Items("register_sales")
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.Len(t, s.requests, 1)
	assert.Equal(t, "/api/register_sales", s.requests[0].path)
	assert.Contains(t, s.requests[0].query, "CLOSED")
	assert.Equal(t, "2026-01", c.Version())
}

func TestHTTPErrorOverHTTP(t *testing.T) {
	s := newStoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid access token"}`))
	})
	c := newServerClient(t, s)

	_, err := c.Product(context.Background(), "p1")
	require.ErrorIs(t, err, ErrUnauthorized)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Invalid access token", httpErr.Message)
}
