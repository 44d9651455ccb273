package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies which field of a Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a JSON value tagged with its kind. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  *Properties
	arr  []Value
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a number Value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue returns a bool Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ObjectValue returns an object Value. A nil p is an empty object.
func ObjectValue(p *Properties) Value {
	if p == nil {
		p = NewProperties()
	}
	return Value{kind: KindObject, obj: p}
}

// ArrayValue returns an array Value.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// ValueOf converts a Go value into a Value. Maps are ordered by key;
// types it does not know are round-tripped through encoding/json.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case *Properties:
		if t == nil {
			return Value{}
		}
		return ObjectValue(t)
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case int:
		return NumberValue(float64(t))
	case int8:
		return NumberValue(float64(t))
	case int16:
		return NumberValue(float64(t))
	case int32:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case uint:
		return NumberValue(float64(t))
	case uint8:
		return NumberValue(float64(t))
	case uint16:
		return NumberValue(float64(t))
	case uint32:
		return NumberValue(float64(t))
	case uint64:
		return NumberValue(float64(t))
	case float32:
		return NumberValue(float64(t))
	case float64:
		return NumberValue(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return StringValue(t.String())
		}
		return NumberValue(f)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p := NewProperties()
		for _, k := range keys {
			p.Set(k, t[k])
		}
		return ObjectValue(p)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = ValueOf(item)
		}
		return ArrayValue(items...)
	case []string:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = StringValue(item)
		}
		return ArrayValue(items...)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return StringValue(fmt.Sprint(v))
	}
	parsed, err := Parse(data)
	if err != nil {
		return StringValue(fmt.Sprint(v))
	}
	return parsed
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the bool held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsObject returns the object held by v.
func (v Value) AsObject() (*Properties, bool) { return v.obj, v.kind == KindObject }

// AsArray returns the items held by v.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Text renders scalars as text: strings as-is, numbers without trailing
// zeros, bools as true/false. Null, objects and arrays yield false.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return formatNumber(v.num), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// Float interprets v as a number. Numeric strings are parsed.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Truth interprets v as a bool. Accepts numbers (non-zero is true) and
// the strings understood by strconv.ParseBool.
func (v Value) Truth() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindNumber:
		return v.num != 0, true
	case KindString:
		b, err := strconv.ParseBool(v.str)
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// Interface converts v back to plain Go values: nil, string, float64,
// bool, map[string]any and []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindObject:
		return v.obj.Map()
	case KindArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Interface()
		}
		return items
	default:
		return nil
	}
}

// Equal reports deep equality. Object key order is not significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindObject:
		return v.obj.Equal(o.obj)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) clone() Value {
	switch v.kind {
	case KindObject:
		return ObjectValue(v.obj.Clone())
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.clone()
		}
		return ArrayValue(items...)
	default:
		return v
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("entity: cannot encode number %v", v.num)
		}
		return []byte(formatNumber(v.num)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindObject:
		return v.obj.MarshalJSON()
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
