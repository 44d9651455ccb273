package vend

import (
	"context"
	"fmt"

	"github.com/s0up4200/vendctl/entity"
)

// Properties decodes the response as an ordered object. A top-level "data"
// object, as returned by single-resource endpoints, is unwrapped.
func (r *Response) Properties() (*entity.Properties, error) {
	props, err := entity.ParseProperties(r.Body)
	if err != nil {
		return nil, err
	}
	if data, ok := props.Object("data"); ok {
		return data, nil
	}
	return props, nil
}

// Items decodes a collection response. Items are read from "data", then
// from each of keys, then from a top-level array.
func (r *Response) Items(keys ...string) ([]*entity.Properties, error) {
	v, err := entity.Parse(r.Body)
	if err != nil {
		return nil, err
	}

	items, ok := v.AsArray()
	if obj, isObj := v.AsObject(); isObj {
		items, ok = obj.Array(append([]string{"data"}, keys...)...)
	}
	if !ok {
		return nil, fmt.Errorf("%w: response holds no item list", entity.ErrNotObject)
	}

	out := make([]*entity.Properties, 0, len(items))
	for i, item := range items {
		obj, ok := item.AsObject()
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %s", entity.ErrNotObject, i, item.Kind())
		}
		out = append(out, obj)
	}
	return out, nil
}

// EntityStore returns a Store that saves entities through the client's
// named endpoints.
func (c *Client) EntityStore() entity.Store {
	return entityStore{client: c}
}

type entityStore struct {
	client *Client
}

func (s entityStore) Create(ctx context.Context, resource string, data *entity.Properties) (*entity.Properties, error) {
	var (
		resp *Response
		err  error
	)
	switch resource {
	case entity.ResourceProducts:
		resp, err = s.client.CreateProduct(ctx, data)
	case entity.ResourceCustomers:
		resp, err = s.client.CreateCustomer(ctx, data)
	case entity.ResourceSales:
		resp, err = s.client.CreateSale(ctx, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	if err != nil {
		return nil, err
	}
	return resp.Properties()
}

func (s entityStore) Update(ctx context.Context, resource, id string, changes *entity.Properties) (*entity.Properties, error) {
	var (
		resp *Response
		err  error
	)
	switch resource {
	case entity.ResourceProducts:
		resp, err = s.client.UpdateProduct(ctx, id, changes)
	case entity.ResourceCustomers:
		resp, err = s.client.UpdateCustomer(ctx, id, changes)
	case entity.ResourceSales:
		resp, err = s.client.UpdateSale(ctx, id, changes)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	if err != nil {
		return nil, err
	}
	return resp.Properties()
}

// NewProduct returns an unsaved product bound to the client.
func (c *Client) NewProduct() *entity.Product {
	return entity.NewProduct(nil, c.EntityStore())
}

// NewCustomer returns an unsaved customer bound to the client.
func (c *Client) NewCustomer() *entity.Customer {
	return entity.NewCustomer(nil, c.EntityStore())
}

// NewSale returns an unsaved sale bound to the client.
func (c *Client) NewSale() *entity.Sale {
	return entity.NewSale(nil, c.EntityStore())
}

// GetProduct fetches a product as an entity.
func (c *Client) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	props, err := c.fetchOne(ctx, c.Product, id)
	if err != nil {
		return nil, err
	}
	return entity.NewProduct(props, c.EntityStore()), nil
}

// GetCustomer fetches a customer as an entity.
func (c *Client) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	props, err := c.fetchOne(ctx, c.Customer, id)
	if err != nil {
		return nil, err
	}
	return entity.NewCustomer(props, c.EntityStore()), nil
}

// GetSale fetches a sale as an entity.
func (c *Client) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	props, err := c.fetchOne(ctx, c.Sale, id)
	if err != nil {
		return nil, err
	}
	return entity.NewSale(props, c.EntityStore()), nil
}

// ListProducts fetches one page of products as entities.
func (c *Client) ListProducts(ctx context.Context, params *ListParams) ([]*entity.Product, error) {
	items, err := c.fetchPage(ctx, c.Products, params, endpointProducts)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, len(items))
	for i, item := range items {
		out[i] = entity.NewProduct(item, c.EntityStore())
	}
	return out, nil
}

// ListCustomers fetches one page of customers as entities.
func (c *Client) ListCustomers(ctx context.Context, params *ListParams) ([]*entity.Customer, error) {
	items, err := c.fetchPage(ctx, c.Customers, params, endpointCustomers)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Customer, len(items))
	for i, item := range items {
		out[i] = entity.NewCustomer(item, c.EntityStore())
	}
	return out, nil
}

// ListSales fetches one page of sales as entities.
func (c *Client) ListSales(ctx context.Context, params *ListParams) ([]*entity.Sale, error) {
	items, err := c.fetchPage(ctx, c.Sales, params, endpointSales)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Sale, len(items))
	for i, item := range items {
		out[i] = entity.NewSale(item, c.EntityStore())
	}
	return out, nil
}

func (c *Client) fetchOne(ctx context.Context, get func(context.Context, string) (*Response, error), id string) (*entity.Properties, error) {
	resp, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp.Properties()
}

func (c *Client) fetchPage(ctx context.Context, list func(context.Context, *ListParams) (*Response, error), params *ListParams, key string) ([]*entity.Properties, error) {
	resp, err := list(ctx, params)
	if err != nil {
		return nil, err
	}
	return resp.Items(key)
}
