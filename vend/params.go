package vend

// ListParams are the cursor pagination parameters shared by collection
// endpoints.
type ListParams struct {
	PageSize int   `url:"page_size,omitempty"`
	After    int64 `url:"after,omitempty"`
	Before   int64 `url:"before,omitempty"`
	Deleted  bool  `url:"deleted,omitempty"`
}

// SearchParams query the search endpoint. Type selects the collection:
// products, customers or sales.
type SearchParams struct {
	Type           string `url:"type"`
	Query          string `url:"q,omitempty"`
	SKU            string `url:"sku,omitempty"`
	Email          string `url:"email,omitempty"`
	CustomerCode   string `url:"customer_code,omitempty"`
	InvoiceNumber  string `url:"invoice_number,omitempty"`
	OutletID       string `url:"outlet_id,omitempty"`
	PageSize       int    `url:"page_size,omitempty"`
	Offset         int    `url:"offset,omitempty"`
	OrderBy        string `url:"order_by,omitempty"`
	OrderDirection string `url:"order_direction,omitempty"`
}

// RegisterSaleParams filter the legacy register_sales listing.
type RegisterSaleParams struct {
	Since    string   `url:"since,omitempty"`
	OutletID string   `url:"outlet_id,omitempty"`
	Tag      string   `url:"tag,omitempty"`
	Status   []string `url:"status[],omitempty"`
	Page     int      `url:"page,omitempty"`
}
