package entity

// Product is a catalogue item.
type Product struct {
	*Object
}

// NewProduct wraps props as a product.
func NewProduct(props *Properties, store Store) *Product {
	return &Product{Object: NewObject(ResourceProducts, props, store)}
}

func (p *Product) Name() string {
	s, _ := p.props.String("name")
	return s
}

func (p *Product) SetName(name string) { p.Set("name", name) }

func (p *Product) Handle() string {
	s, _ := p.props.String("handle")
	return s
}

func (p *Product) SKU() string {
	s, _ := p.props.String("sku")
	return s
}

// Price is the tax-exclusive price. Older payloads call it "price", newer
// ones "price_excluding_tax".
func (p *Product) Price() float64 {
	f, _ := p.props.Float("price", "price_excluding_tax")
	return f
}

// SetPrice writes the price under whichever key the payload already uses.
func (p *Product) SetPrice(price float64) {
	if !p.props.Has("price") && p.props.Has("price_excluding_tax") {
		p.Set("price_excluding_tax", price)
		return
	}
	p.Set("price", price)
}

// PriceIncludingTax falls back to "retail_price" for legacy payloads.
func (p *Product) PriceIncludingTax() float64 {
	f, _ := p.props.Float("price_including_tax", "retail_price")
	return f
}

func (p *Product) SupplyPrice() float64 {
	f, _ := p.props.Float("supply_price")
	return f
}

// Active reports whether the product is sellable. Products without the
// field are treated as active.
func (p *Product) Active() bool {
	b, ok := p.props.Bool("active", "is_active")
	return !ok || b
}

func (p *Product) SetActive(active bool) { p.Set("active", active) }
