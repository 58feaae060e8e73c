package params

import (
	"maps"
	"slices"
)

// FlatConfig maps dotted paths to leaf values. It never holds a Document.
type FlatConfig map[string]Value

// Keys returns the paths in sorted order.
func (f FlatConfig) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Flatten collapses doc into dotted paths rooted at prefix. Nested documents
// contribute one entry per terminal leaf; an empty nested document contributes
// nothing. Lists and sets are leaves even when they contain documents.
func Flatten(doc Document, prefix string) FlatConfig {
	out := make(FlatConfig)
	flattenInto(out, doc, prefix)
	return out
}

func flattenInto(out FlatConfig, doc Document, prefix string) {
	// Sorted so that a literal dotted key colliding with a nested path
	// resolves the same way on every call.
	for _, k := range slices.Sorted(maps.Keys(doc)) {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		if nested, ok := doc[k].(Document); ok {
			flattenInto(out, nested, path)
			continue
		}
		out[path] = doc[k]
	}
}

// Lookup returns the value at a dotted path. A top-level key wins over a
// nested path with the same spelling.
func Lookup(doc Document, path string) (Value, bool) {
	if v, ok := doc[path]; ok {
		return v, true
	}
	v, ok := Flatten(doc, "")[path]
	return v, ok
}
