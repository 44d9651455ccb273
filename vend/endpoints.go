package vend

import (
	"context"
	"net/url"
)

const (
	endpointProducts      = "products"
	endpointCustomers     = "customers"
	endpointSales         = "sales"
	endpointOutlets       = "outlets"
	endpointRegisters     = "registers"
	endpointUsers         = "users"
	endpointTaxes         = "taxes"
	endpointPaymentTypes  = "payment_types"
	endpointSuppliers     = "suppliers"
	endpointBrands        = "brands"
	endpointInventory     = "inventory"
	endpointSearch        = "search"
	endpointRegisterSales = "register_sales"

	// legacyRegisterSalesVersion addresses register sales at the bare /api prefix
	legacyRegisterSalesVersion = "0.9"
)

func resourcePath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// Products lists products.
func (c *Client) Products(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointProducts, methodGet, params)
}

// Product fetches one product.
func (c *Client) Product(ctx context.Context, id string) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointProducts, id), methodGet, nil)
}

// CreateProduct creates a product from body.
func (c *Client) CreateProduct(ctx context.Context, body any) (*Response, error) {
	return c.CallResponse(ctx, endpointProducts, methodPost, body)
}

// UpdateProduct sends the fields in body to an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id string, body any) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointProducts, id), methodPut, body)
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointProducts, id), methodDelete, nil)
}

// Customers lists customers.
func (c *Client) Customers(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointCustomers, methodGet, params)
}

// Customer fetches one customer.
func (c *Client) Customer(ctx context.Context, id string) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointCustomers, id), methodGet, nil)
}

// CreateCustomer creates a customer from body.
func (c *Client) CreateCustomer(ctx context.Context, body any) (*Response, error) {
	return c.CallResponse(ctx, endpointCustomers, methodPost, body)
}

// UpdateCustomer sends the fields in body to an existing customer.
func (c *Client) UpdateCustomer(ctx context.Context, id string, body any) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointCustomers, id), methodPut, body)
}

// DeleteCustomer deletes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id string) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointCustomers, id), methodDelete, nil)
}

// Sales lists sales.
func (c *Client) Sales(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointSales, methodGet, params)
}

// Sale fetches one sale.
func (c *Client) Sale(ctx context.Context, id string) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointSales, id), methodGet, nil)
}

// CreateSale creates a sale from body.
func (c *Client) CreateSale(ctx context.Context, body any) (*Response, error) {
	return c.CallResponse(ctx, endpointSales, methodPost, body)
}

// UpdateSale sends the fields in body to an existing sale.
func (c *Client) UpdateSale(ctx context.Context, id string, body any) (*Response, error) {
	return c.CallResponse(ctx, resourcePath(endpointSales, id), methodPut, body)
}

// Outlets lists the store's outlets.
func (c *Client) Outlets(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointOutlets, methodGet, params)
}

// Registers lists the registers across all outlets.
func (c *Client) Registers(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointRegisters, methodGet, params)
}

// Users lists the store's users.
func (c *Client) Users(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointUsers, methodGet, params)
}

// Taxes lists the configured sales taxes.
func (c *Client) Taxes(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointTaxes, methodGet, params)
}

// PaymentTypes lists the payment types registers accept.
func (c *Client) PaymentTypes(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointPaymentTypes, methodGet, params)
}

// Suppliers lists product suppliers.
func (c *Client) Suppliers(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointSuppliers, methodGet, params)
}

// Brands lists product brands.
func (c *Client) Brands(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointBrands, methodGet, params)
}

// Inventory lists inventory records for every product and outlet.
func (c *Client) Inventory(ctx context.Context, params *ListParams) (*Response, error) {
	return c.CallResponse(ctx, endpointInventory, methodGet, params)
}

// Search runs a search query.
func (c *Client) Search(ctx context.Context, params SearchParams) (*Response, error) {
	return c.CallResponse(ctx, endpointSearch, methodGet, params)
}

// RegisterSales lists legacy register sales from /api/register_sales.
func (c *Client) RegisterSales(ctx context.Context, params *RegisterSaleParams) (*Response, error) {
	return c.LegacyCallResponse(ctx, endpointRegisterSales, methodGet, legacyRegisterSalesVersion, params)
}

// CreateRegisterSale posts a legacy register sale.
func (c *Client) CreateRegisterSale(ctx context.Context, body any) (*Response, error) {
	return c.LegacyCallResponse(ctx, endpointRegisterSales, methodPost, legacyRegisterSalesVersion, body)
}
