package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned when a JSON document that should be an object
// is something else.
var ErrNotObject = errors.New("entity: JSON value is not an object")

// Properties is an insertion-ordered mapping from field name to Value.
// The zero value is not usable; call NewProperties.
type Properties struct {
	keys   []string
	values map[string]Value
}

// NewProperties returns an empty Properties.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]Value)}
}

// PropertiesOf builds Properties from a map, ordered by key.
func PropertiesOf(m map[string]any) *Properties {
	obj, _ := ValueOf(m).AsObject()
	return obj
}

// ParseProperties decodes a JSON object keeping its key order.
func ParseProperties(data []byte) (*Properties, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, v.Kind())
	}
	return obj, nil
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Set stores v under key, converting it with ValueOf. Existing keys keep
// their position.
func (p *Properties) Set(key string, v any) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = ValueOf(v)
}

// Delete removes key.
func (p *Properties) Delete(key string) {
	if _, exists := p.values[key]; !exists {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy.
func (p *Properties) Clone() *Properties {
	c := NewProperties()
	if p == nil {
		return c
	}
	c.keys = append(c.keys, p.keys...)
	for k, v := range p.values {
		c.values[k] = v.clone()
	}
	return c
}

// Equal reports whether p and o hold the same keys with equal values.
func (p *Properties) Equal(o *Properties) bool {
	if p.Len() != o.Len() {
		return false
	}
	for _, k := range p.Keys() {
		ov, ok := o.Get(k)
		if !ok {
			return false
		}
		v, _ := p.Get(k)
		if !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Map converts p to a plain map.
func (p *Properties) Map() map[string]any {
	m := make(map[string]any, p.Len())
	if p == nil {
		return m
	}
	for _, k := range p.keys {
		m[k] = p.values[k].Interface()
	}
	return m
}

// lookup returns the first non-null value among keys.
func (p *Properties) lookup(keys ...string) (Value, bool) {
	for _, key := range keys {
		if v, ok := p.Get(key); ok && !v.IsNull() {
			return v, true
		}
	}
	return Value{}, false
}

// String returns the first of keys holding a scalar, rendered as text.
func (p *Properties) String(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := p.lookup(key); ok {
			if s, ok := v.Text(); ok {
				return s, true
			}
		}
	}
	return "", false
}

// Float returns the first of keys holding a number or numeric string.
func (p *Properties) Float(keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := p.lookup(key); ok {
			if f, ok := v.Float(); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// Bool returns the first of keys holding something with a truth value.
func (p *Properties) Bool(keys ...string) (bool, bool) {
	for _, key := range keys {
		if v, ok := p.lookup(key); ok {
			if b, ok := v.Truth(); ok {
				return b, true
			}
		}
	}
	return false, false
}

// Object returns the first of keys holding an object.
func (p *Properties) Object(keys ...string) (*Properties, bool) {
	for _, key := range keys {
		if v, ok := p.lookup(key); ok {
			if obj, ok := v.AsObject(); ok {
				return obj, true
			}
		}
	}
	return nil, false
}

// Array returns the first of keys holding an array.
func (p *Properties) Array(keys ...string) ([]Value, bool) {
	for _, key := range keys {
		if v, ok := p.lookup(key); ok {
			if arr, ok := v.AsArray(); ok {
				return arr, true
			}
		}
	}
	return nil, false
}

// MarshalJSON encodes p as a JSON object in key order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v, _ := p.Get(k)
		data, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into p, replacing its contents.
func (p *Properties) UnmarshalJSON(data []byte) error {
	parsed, err := ParseProperties(data)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// Parse decodes a single JSON document into a Value, preserving object key
// order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("entity: decode: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errors.New("entity: decode: trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return StringValue(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return NumberValue(f), nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return Value{}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	p := NewProperties()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not string", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", key, err)
		}
		p.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ObjectValue(p), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("[%d]: %w", len(items), err)
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ArrayValue(items...), nil
}
