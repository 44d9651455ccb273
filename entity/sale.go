package entity

// Sale is a register sale. Current payloads keep totals at the top level
// and list "payments" and "line_items"; legacy register sales nest totals
// under "totals" and use "register_sale_payments" and
// "register_sale_products".
type Sale struct {
	*Object
}

// NewSale wraps props as a sale.
func NewSale(props *Properties, store Store) *Sale {
	return &Sale{Object: NewObject(ResourceSales, props, store)}
}

func (s *Sale) InvoiceNumber() string {
	v, _ := s.props.String("invoice_number")
	return v
}

func (s *Sale) Status() string {
	v, _ := s.props.String("status")
	return v
}

func (s *Sale) Note() string {
	v, _ := s.props.String("note")
	return v
}

func (s *Sale) SetNote(note string) { s.Set("note", note) }

// TotalPrice is the tax-exclusive total.
func (s *Sale) TotalPrice() float64 {
	return s.total("total_price")
}

func (s *Sale) TotalTax() float64 {
	return s.total("total_tax")
}

// Total is the tax-inclusive total.
func (s *Sale) Total() float64 {
	return s.TotalPrice() + s.TotalTax()
}

// Payments returns each payment as its own property map.
func (s *Sale) Payments() []*Properties {
	return objects(s.props, "payments", "register_sale_payments")
}

// TotalPaid sums the amount of every payment.
func (s *Sale) TotalPaid() float64 {
	var paid float64
	for _, payment := range s.Payments() {
		amount, _ := payment.Float("amount")
		paid += amount
	}
	return paid
}

// Balance is what remains to be paid.
func (s *Sale) Balance() float64 {
	return s.Total() - s.TotalPaid()
}

func (s *Sale) LineItems() []*Properties {
	return objects(s.props, "line_items", "register_sale_products")
}

func (s *Sale) total(key string) float64 {
	if f, ok := s.props.Float(key); ok {
		return f
	}
	if totals, ok := s.props.Object("totals"); ok {
		f, _ := totals.Float(key)
		return f
	}
	return 0
}

func objects(p *Properties, keys ...string) []*Properties {
	items, _ := p.Array(keys...)
	out := make([]*Properties, 0, len(items))
	for _, item := range items {
		if obj, ok := item.AsObject(); ok {
			out = append(out, obj)
		}
	}
	return out
}
