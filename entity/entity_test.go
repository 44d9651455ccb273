package entity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesOrder(t *testing.T) {
	props, err := ParseProperties([]byte(`{"zeta":1,"alpha":"a","mid":{"b":true,"a":null},"list":[1,"two",false]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid", "list"}, props.Keys())

	mid, ok := props.Object("mid")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, mid.Keys())

	data, err := json.Marshal(props)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":1,"alpha":"a","mid":{"b":true,"a":null},"list":[1,"two",false]}`, string(data))
	assert.Equal(t, `{"zeta":1,"alpha":"a","mid":{"b":true,"a":null},"list":[1,"two",false]}`, string(data))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ``},
		{name: "malformed", input: `{"a":`},
		{name: "trailing data", input: `{"a":1} {"b":2}`},
		{name: "not an object", input: `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProperties([]byte(tt.input))
			require.Error(t, err)
		})
	}

	_, err := ParseProperties([]byte(`"text"`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{name: "nil", in: nil, kind: KindNull},
		{name: "string", in: "x", kind: KindString},
		{name: "int", in: 3, kind: KindNumber},
		{name: "int64", in: int64(3), kind: KindNumber},
		{name: "float", in: 2.5, kind: KindNumber},
		{name: "json number", in: json.Number("4.25"), kind: KindNumber},
		{name: "bool", in: true, kind: KindBool},
		{name: "map", in: map[string]any{"a": 1}, kind: KindObject},
		{name: "slice", in: []any{1, "a"}, kind: KindArray},
		{name: "strings", in: []string{"a", "b"}, kind: KindArray},
		{name: "struct", in: struct {
			Name string `json:"name"`
		}{Name: "n"}, kind: KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, ValueOf(tt.in).Kind())
		})
	}
}

func TestValueEqual(t *testing.T) {
	a := ValueOf(map[string]any{"x": 1, "y": []any{"a", true}})
	b, err := Parse([]byte(`{"y":["a",true],"x":1}`))
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "object key order is not significant")

	c, err := Parse([]byte(`{"y":["a",false],"x":1}`))
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	assert.False(t, StringValue("1").Equal(NumberValue(1)))
	assert.True(t, Value{}.Equal(ValueOf(nil)))
}

func TestFallbackAccessors(t *testing.T) {
	props := PropertiesOf(map[string]any{
		"price_including_tax": "12.50",
		"count":               3,
		"flag":                "1",
		"empty":               nil,
	})

	f, ok := props.Float("price", "price_including_tax")
	require.True(t, ok)
	assert.Equal(t, 12.5, f)

	_, ok = props.Float("missing")
	assert.False(t, ok)

	s, ok := props.String("empty", "count")
	require.True(t, ok, "null values are skipped")
	assert.Equal(t, "3", s)

	b, ok := props.Bool("flag")
	require.True(t, ok)
	assert.True(t, b)
}

func TestPropertiesSetDeleteClone(t *testing.T) {
	p := NewProperties()
	p.Set("a", 1)
	p.Set("b", 2)
	p.Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, p.Keys())

	c := p.Clone()
	c.Set("c", map[string]any{"n": 1})
	p.Delete("a")

	assert.Equal(t, []string{"b"}, p.Keys())
	assert.Equal(t, []string{"a", "b", "c"}, c.Keys())
	assert.Equal(t, map[string]any{"a": float64(3), "b": float64(2), "c": map[string]any{"n": float64(1)}}, c.Map())
}

type recordingStore struct {
	creates []*Properties
	updates []*Properties
	ids     []string
	reply   *Properties
	err     error
}

func (s *recordingStore) Create(_ context.Context, resource string, data *Properties) (*Properties, error) {
	s.creates = append(s.creates, data)
	return s.reply, s.err
}

func (s *recordingStore) Update(_ context.Context, resource, id string, changes *Properties) (*Properties, error) {
	s.ids = append(s.ids, id)
	s.updates = append(s.updates, changes)
	return s.reply, s.err
}

func TestObjectChanged(t *testing.T) {
	props, err := ParseProperties([]byte(`{"id":"p1","name":"Mug","price":5,"tags":["a"]}`))
	require.NoError(t, err)

	obj := NewObject(ResourceProducts, props, nil)
	assert.False(t, obj.HasChanges())
	assert.Equal(t, []string{"id"}, obj.Changed().Keys(), "the id is always part of the changed set")

	obj.Set("name", "Mug")
	assert.False(t, obj.HasChanges(), "setting an equal value is not a change")

	obj.Set("price", 6)
	obj.Set("colour", "blue")
	assert.True(t, obj.HasChanges())
	assert.Equal(t, []string{"id", "price", "colour"}, obj.Changed().Keys())
}

func TestObjectSaveUpdate(t *testing.T) {
	props, err := ParseProperties([]byte(`{"id":"p1","name":"Mug","price":5}`))
	require.NoError(t, err)

	store := &recordingStore{reply: PropertiesOf(map[string]any{"id": "p1", "name": "Mug", "price": 6, "version": 42})}
	obj := NewObject(ResourceProducts, props, store)

	require.NoError(t, obj.Save(context.Background()))
	assert.Empty(t, store.updates, "nothing to send without changes")

	obj.Set("price", 6)
	require.NoError(t, obj.Save(context.Background()))

	require.Len(t, store.updates, 1)
	assert.Equal(t, []string{"p1"}, store.ids)
	assert.Equal(t, map[string]any{"id": "p1", "price": float64(6)}, store.updates[0].Map())

	assert.False(t, obj.HasChanges(), "snapshot equals current after save")
	v, ok := obj.Get("version")
	require.True(t, ok)
	n, _ := v.AsNumber()
	assert.Equal(t, float64(42), n)
}

func TestObjectSaveCreate(t *testing.T) {
	store := &recordingStore{reply: PropertiesOf(map[string]any{"id": "new-id"})}
	customer := NewCustomer(nil, store)
	customer.SetFirstName("Ada")
	customer.SetLastName("Lovelace")

	require.NoError(t, customer.Save(context.Background()))
	require.Len(t, store.creates, 1)
	assert.Empty(t, store.updates)
	assert.Equal(t, map[string]any{"first_name": "Ada", "last_name": "Lovelace"}, store.creates[0].Map())

	assert.Equal(t, "new-id", customer.ID())
	assert.False(t, customer.HasChanges())
}

func TestObjectSaveError(t *testing.T) {
	boom := errors.New("boom")
	props := PropertiesOf(map[string]any{"id": "s1", "note": "a"})
	store := &recordingStore{err: boom}
	sale := NewSale(props, store)
	sale.SetNote("b")

	err := sale.Save(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, sale.HasChanges(), "failed save keeps pending changes")

	assert.ErrorIs(t, NewObject(ResourceSales, nil, nil).Save(context.Background()), ErrNoStore)
}

func TestProductAccessors(t *testing.T) {
	legacy := NewProduct(PropertiesOf(map[string]any{"name": "Tea", "price": "3.20", "retail_price": 3.52, "active": "0", "sku": 1001}), nil)
	assert.Equal(t, "Tea", legacy.Name())
	assert.Equal(t, 3.2, legacy.Price())
	assert.Equal(t, 3.52, legacy.PriceIncludingTax())
	assert.False(t, legacy.Active())
	assert.Equal(t, "1001", legacy.SKU())

	current := NewProduct(PropertiesOf(map[string]any{"price_excluding_tax": 4.0, "price_including_tax": 4.6}), nil)
	assert.Equal(t, 4.0, current.Price())
	assert.Equal(t, 4.6, current.PriceIncludingTax())
	assert.True(t, current.Active(), "missing active flag means active")

	current.SetPrice(5)
	assert.Equal(t, 5.0, current.Price())
	assert.False(t, current.Properties().Has("price"), "price is written under the existing key")
}

func TestCustomerAccessors(t *testing.T) {
	c := NewCustomer(PropertiesOf(map[string]any{"first_name": "Grace", "last_name": "Hopper", "code": "GH-1", "account_balance": "-12.5"}), nil)
	assert.Equal(t, "Grace Hopper", c.Name())
	assert.Equal(t, "GH-1", c.Code())
	assert.Equal(t, -12.5, c.Balance())

	named := NewCustomer(PropertiesOf(map[string]any{"name": "Walk-in", "customer_code": "W"}), nil)
	assert.Equal(t, "Walk-in", named.Name())
	assert.Equal(t, "W", named.Code())
}

func TestSaleAccessors(t *testing.T) {
	current, err := ParseProperties([]byte(`{
		"invoice_number": "INV-7",
		"status": "CLOSED",
		"total_price": 10,
		"total_tax": 1.5,
		"payments": [{"amount": 5}, {"amount": "6.5"}],
		"line_items": [{"product_id": "a"}, {"product_id": "b"}]
	}`))
	require.NoError(t, err)

	s := NewSale(current, nil)
	assert.Equal(t, "INV-7", s.InvoiceNumber())
	assert.Equal(t, "CLOSED", s.Status())
	assert.Equal(t, 11.5, s.Total())
	assert.Equal(t, 11.5, s.TotalPaid())
	assert.Equal(t, 0.0, s.Balance())
	assert.Len(t, s.LineItems(), 2)

	legacy, err := ParseProperties([]byte(`{
		"totals": {"total_price": 20, "total_tax": 2},
		"register_sale_payments": [{"amount": 10}],
		"register_sale_products": [{"product_id": "a"}]
	}`))
	require.NoError(t, err)

	l := NewSale(legacy, nil)
	assert.Equal(t, 22.0, l.Total())
	assert.Equal(t, 10.0, l.TotalPaid())
	assert.Equal(t, 12.0, l.Balance())
	assert.Len(t, l.LineItems(), 1)
}
