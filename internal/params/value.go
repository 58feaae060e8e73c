package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a config value as recorded by the tracking service. It is a closed
// set of cases: Null, String, Number and Bool are scalars, List and Set are
// composites, Document is a nested key-value document, and Missing marks a key
// a run does not have.
type Value interface {
	isValue()
}

// Null is an explicit null.
type Null struct{}

// String is a string scalar.
type String string

// Number keeps the literal text of a number as received, so 7 and 7.0 stay
// distinguishable.
type Number string

// Bool is a boolean scalar.
type Bool bool

// List is an ordered sequence. Order is significant.
type List []Value

// Set is an unordered collection. Element order is not significant.
type Set []Value

// Document is a nested key-value document.
type Document map[string]Value

type absent struct{}

// Missing is the value of a key a run's config does not contain. No real
// value is ever equal to it.
var Missing Value = absent{}

func (Null) isValue()     {}
func (String) isValue()   {}
func (Number) isValue()   {}
func (Bool) isValue()     {}
func (List) isValue()     {}
func (Set) isValue()      {}
func (Document) isValue() {}
func (absent) isValue()   {}

// FromAny converts a decoded JSON (or YAML) tree into a Value.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case map[string]any:
		doc := make(Document, len(t))
		for k, v := range t {
			doc[k] = FromAny(v)
		}
		return doc
	case []any:
		list := make(List, 0, len(t))
		for _, v := range t {
			list = append(list, FromAny(v))
		}
		return list
	case string:
		return String(t)
	case json.Number:
		return Number(t.String())
	case bool:
		return Bool(t)
	case float64:
		return Number(strconv.FormatFloat(t, 'g', -1, 64))
	case float32:
		return Number(strconv.FormatFloat(float64(t), 'g', -1, 32))
	case int:
		return Number(strconv.Itoa(t))
	case int64:
		return Number(strconv.FormatInt(t, 10))
	case int32:
		return Number(strconv.FormatInt(int64(t), 10))
	case uint64:
		return Number(strconv.FormatUint(t, 10))
	default:
		return String(fmt.Sprint(t))
	}
}

// ParseDocument decodes a JSON object into a Document. Numbers keep their
// literal text. Empty input and a JSON null both decode to an empty document.
func ParseDocument(data []byte) (Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Document{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if raw == nil {
		return Document{}, nil
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document must be a JSON object, got %T", raw)
	}
	return FromAny(m).(Document), nil
}

// Native converts v back into plain Go values (map[string]any, []any,
// json.Number, string, bool, nil) for encoding.
func Native(v Value) any {
	switch t := v.(type) {
	case String:
		return string(t)
	case Number:
		return json.Number(t)
	case Bool:
		return bool(t)
	case List:
		out := make([]any, 0, len(t))
		for _, e := range t {
			out = append(out, Native(e))
		}
		return out
	case Set:
		sorted := t.Sorted()
		out := make([]any, 0, len(sorted))
		for _, e := range sorted {
			out = append(out, Native(e))
		}
		return out
	case Document:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Native(e)
		}
		return out
	default:
		return nil
	}
}
