package params

import (
	"math"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{name: "string", value: String("adam"), expected: "adam"},
		{name: "empty string", value: String(""), expected: ""},
		{name: "integer", value: Number("7"), expected: "7"},
		{name: "float keeps literal text", value: Number("7.0"), expected: "7.0"},
		{name: "small float", value: Number("0.01"), expected: "0.01"},
		{name: "true", value: Bool(true), expected: "true"},
		{name: "false", value: Bool(false), expected: "false"},
		{name: "null", value: Null{}, expected: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Canonicalize(tt.value)
			assert.Equal(t, tt.expected, c.String())
			assert.False(t, c.IsMissing())
		})
	}
}

func TestCanonicalize_Composites(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{
			name:     "list keeps order",
			value:    List{Number("3"), Number("1"), Number("2")},
			expected: "[3,1,2]",
		},
		{
			name:     "document keys sorted",
			value:    Document{"b": Number("2"), "a": String("x")},
			expected: `{"a":"x","b":2}`,
		},
		{
			name:     "set elements sorted",
			value:    Set{String("b"), String("a"), String("c")},
			expected: `["a","b","c"]`,
		},
		{
			name:     "html characters are not escaped",
			value:    List{String("<a&b>")},
			expected: `["<a&b>"]`,
		},
		{
			name:     "nested document in list",
			value:    List{Document{"z": Null{}, "y": Bool(true)}},
			expected: `[{"y":true,"z":null}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Canonicalize(tt.value).String())
		})
	}
}

func TestCanonicalize_SerializationFallback(t *testing.T) {
	value := List{Number("NaN"), String("x")}

	c, fellBack := canonicalize(value)
	assert.True(t, fellBack)
	assert.Equal(t, "[NaN x]", c.String())

	// Scalars never fall back, whatever their text.
	c, fellBack = canonicalize(Number("NaN"))
	assert.False(t, fellBack)
	assert.Equal(t, "NaN", c.String())
}

func TestCanonicalize_MissingNeverCollides(t *testing.T) {
	missing := Canonicalize(Missing)
	assert.True(t, missing.IsMissing())
	assert.Equal(t, MissingText, missing.String())

	for _, v := range []Value{String(MissingText), String(""), Null{}, List{}, Document{}} {
		assert.NotEqual(t, missing, Canonicalize(v), "value %#v", v)
	}
}

func TestCanonical_Compare(t *testing.T) {
	a := Canonicalize(String("a"))
	b := Canonicalize(String("b"))
	missing := Canonicalize(Missing)
	literal := Canonicalize(String(MissingText))

	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(Canonicalize(String("a"))))
	assert.Positive(t, missing.Compare(literal))
	assert.Negative(t, literal.Compare(missing))
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"lr": 0.10, "epochs": 3, "opt": {"name": "adam", "betas": [0.9, 0.999]}, "x": null}`))
	require.NoError(t, err)

	assert.Equal(t, Document{
		"lr":     Number("0.10"),
		"epochs": Number("3"),
		"opt": Document{
			"name":  String("adam"),
			"betas": List{Number("0.9"), Number("0.999")},
		},
		"x": Null{},
	}, doc)

	for _, empty := range []string{"", "  ", "null"} {
		doc, err := ParseDocument([]byte(empty))
		require.NoError(t, err)
		assert.Empty(t, doc)
	}

	_, err = ParseDocument([]byte(`[1,2]`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a JSON object")

	_, err = ParseDocument([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestFromAny(t *testing.T) {
	assert.Equal(t, Null{}, FromAny(nil))
	assert.Equal(t, Number("3"), FromAny(3))
	assert.Equal(t, Number("2.5"), FromAny(2.5))
	assert.Equal(t, Bool(true), FromAny(true))
	assert.Equal(t, String("x"), FromAny("x"))
	assert.Equal(t, List{Number("1"), String("a")}, FromAny([]any{1, "a"}))
	assert.Equal(t, Document{"k": Number("1")}, FromAny(map[string]any{"k": 1}))
	assert.Equal(t, Number("NaN"), FromAny(math.NaN()))
}

func TestCanonicalize_DocumentOrderProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("documents built in any order canonicalize alike", prop.ForAll(
		func(keys []string, seed int) bool {
			forward := Document{}
			for i, k := range keys {
				forward[k] = Number(strconv.Itoa(i % 5))
			}

			backward := Document{}
			for i := len(keys) - 1; i >= 0; i-- {
				backward[keys[i]] = forward[keys[i]]
			}
			backward["seed"] = Number(strconv.Itoa(seed))
			forward["seed"] = Number(strconv.Itoa(seed))

			return Canonicalize(forward) == Canonicalize(backward)
		},
		gen.SliceOf(gen.Identifier()),
		gen.Int(),
	))

	properties.Property("sets are order independent", prop.ForAll(
		func(elems []string) bool {
			forward := make(Set, 0, len(elems))
			backward := make(Set, 0, len(elems))
			for i := range elems {
				forward = append(forward, String(elems[i]))
				backward = append(backward, String(elems[len(elems)-1-i]))
			}
			return Canonicalize(forward) == Canonicalize(backward)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
