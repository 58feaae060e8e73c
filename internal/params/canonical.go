package params

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
)

// MissingText is how the missing value is displayed.
const MissingText = "<MISSING>"

// Canonical is the comparison form of a Value. Structurally equal values have
// equal Canonicals. The missing case is a separate flag rather than a reserved
// string, so it never equals the canonical form of a real value.
type Canonical struct {
	text    string
	missing bool
}

// String returns the display text.
func (c Canonical) String() string {
	if c.missing {
		return MissingText
	}
	return c.text
}

// IsMissing reports whether c stands for an absent key.
func (c Canonical) IsMissing() bool {
	return c.missing
}

// Compare orders canonicals by display text; the missing value sorts after a
// real value with the same text.
func (c Canonical) Compare(o Canonical) int {
	if r := cmp.Compare(c.String(), o.String()); r != 0 {
		return r
	}
	switch {
	case c.missing == o.missing:
		return 0
	case c.missing:
		return 1
	default:
		return -1
	}
}

// Canonicalize returns the canonical form of v. Scalars use their direct text;
// composites are encoded as JSON with object keys sorted and set elements
// ordered, so construction order never matters. If a composite cannot be
// encoded the direct fmt rendering is used instead.
func Canonicalize(v Value) Canonical {
	c, _ := canonicalize(v)
	return c
}

// canonicalize is Canonicalize that also reports whether the encoding fell
// back to fmt.
func canonicalize(v Value) (Canonical, bool) {
	switch t := v.(type) {
	case nil, absent:
		return Canonical{missing: true}, false
	case Null:
		return Canonical{text: "null"}, false
	case String:
		return Canonical{text: string(t)}, false
	case Number:
		return Canonical{text: string(t)}, false
	case Bool:
		if t {
			return Canonical{text: "true"}, false
		}
		return Canonical{text: "false"}, false
	}

	native := Native(v)
	text, err := encodeJSON(native)
	if err != nil {
		return Canonical{text: fmt.Sprint(native)}, true
	}
	return Canonical{text: text}, false
}

// encodeJSON marshals with map keys sorted (encoding/json always sorts them)
// and without HTML escaping.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Sorted returns the set's elements ordered by their canonical form.
func (s Set) Sorted() []Value {
	type keyed struct {
		c Canonical
		v Value
	}
	ks := make([]keyed, 0, len(s))
	for _, v := range s {
		ks = append(ks, keyed{c: Canonicalize(v), v: v})
	}
	slices.SortStableFunc(ks, func(a, b keyed) int { return a.c.Compare(b.c) })

	out := make([]Value, 0, len(ks))
	for _, k := range ks {
		out = append(out, k.v)
	}
	return out
}
