package runs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Filters is the filter object sent with a run query.
type Filters map[string]any

// BuildFilters combines a group name and a raw JSON filter object. Keys in raw
// override the group. Both empty yields nil.
func BuildFilters(group, raw string) (Filters, error) {
	filters := Filters{}
	if group != "" {
		filters["group"] = group
	}

	if strings.TrimSpace(raw) != "" {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()

		var extra any
		if err := dec.Decode(&extra); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidFilter)
		}
		obj, ok := extra.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: filters JSON must be an object", ErrInvalidFilter)
		}
		for k, v := range obj {
			filters[k] = v
		}
	}

	if len(filters) == 0 {
		return nil, nil
	}
	return filters, nil
}

// String renders the filters as compact JSON with sorted keys.
func (f Filters) String() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(f)); err != nil {
		return fmt.Sprint(map[string]any(f))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
