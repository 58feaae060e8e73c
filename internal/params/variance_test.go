package params

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonicals(values ...Value) []Canonical {
	out := make([]Canonical, 0, len(values))
	for _, v := range values {
		out = append(out, Canonicalize(v))
	}
	return out
}

func flatAll(docs ...Document) []FlatConfig {
	out := make([]FlatConfig, 0, len(docs))
	for _, d := range docs {
		out = append(out, Flatten(d, ""))
	}
	return out
}

func TestComputeVariance_SingleKeyVaries(t *testing.T) {
	report := ComputeVariance(flatAll(
		Document{"lr": Number("0.1"), "model": Document{"size": Number("7")}},
		Document{"lr": Number("0.01"), "model": Document{"size": Number("7")}},
	))

	assert.Equal(t, Varying, report.Outcome)
	assert.Equal(t, 2, report.Runs)
	assert.Equal(t, []string{"lr"}, report.Keys)
	assert.NotContains(t, report.Values, "model.size")
	assert.Equal(t, canonicals(Number("0.01"), Number("0.1")), report.Values["lr"])
}

func TestComputeVariance_AbsentKeyVaries(t *testing.T) {
	report := ComputeVariance(flatAll(
		Document{"a": Number("1")},
		Document{},
	))

	require.Equal(t, Varying, report.Outcome)
	assert.Equal(t, []string{"a"}, report.Keys)

	values := report.Values["a"]
	require.Len(t, values, 2)
	assert.Equal(t, "1", values[0].String())
	assert.True(t, values[1].IsMissing())
}

func TestComputeVariance_ExplicitMissingCountsOnce(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{name: "missing marker", value: Missing},
		{name: "nil value", value: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComputeVariance(flatAll(
				Document{"a": tt.value},
				Document{},
			))

			assert.Equal(t, Uniform, report.Outcome)
			assert.Empty(t, report.Keys)
		})
	}

	report := ComputeVariance(flatAll(
		Document{"a": Missing},
		Document{"a": Number("1")},
		Document{},
	))
	require.Equal(t, Varying, report.Outcome)
	values := report.Values["a"]
	require.Len(t, values, 2)
	assert.Equal(t, "1", values[0].String())
	assert.True(t, values[1].IsMissing())
}

func TestComputeVariance_EmptyGroup(t *testing.T) {
	report := ComputeVariance(nil)

	assert.Equal(t, EmptyGroup, report.Outcome)
	assert.Zero(t, report.Runs)
	assert.Empty(t, report.Keys)
}

func TestComputeVariance_Uniform(t *testing.T) {
	report := ComputeVariance(flatAll(
		Document{"a": Number("1"), "b": List{String("x")}},
		Document{"b": List{String("x")}, "a": Number("1")},
	))

	assert.Equal(t, Uniform, report.Outcome)
	assert.Equal(t, 2, report.Runs)
	assert.Empty(t, report.Keys)
}

func TestComputeVariance_SingleRunIsUniform(t *testing.T) {
	report := ComputeVariance(flatAll(Document{"a": Number("1")}))
	assert.Equal(t, Uniform, report.Outcome)
}

func TestComputeVariance_MissingVersusLiteralMarker(t *testing.T) {
	report := ComputeVariance(flatAll(
		Document{"a": String(MissingText)},
		Document{},
	))

	require.Equal(t, Varying, report.Outcome)
	assert.Len(t, report.Values["a"], 2)
}

func TestComputeVariance_CountsFallbacks(t *testing.T) {
	report := ComputeVariance(flatAll(
		Document{"a": List{Number("NaN")}},
		Document{"a": List{Number("1")}},
	))

	assert.Equal(t, Varying, report.Outcome)
	assert.Equal(t, 1, report.Fallbacks)
}

func TestAccumulator_MergeMatchesSequential(t *testing.T) {
	configs := flatAll(
		Document{"a": Number("1"), "b": String("x")},
		Document{"a": Number("2")},
		Document{"a": Number("1"), "c": Bool(true)},
		Document{"b": String("y"), "c": Bool(true)},
	)

	left := NewAccumulator()
	left.Add(configs[0])
	left.Add(configs[3])

	right := NewAccumulator()
	right.Add(configs[2])
	right.Add(configs[1])

	left.Merge(right)

	if diff := cmp.Diff(ComputeVariance(configs), left.Report(), cmp.AllowUnexported(Canonical{})); diff != "" {
		t.Errorf("merged report mismatch (-want +got):\n%s", diff)
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "varying", Varying.String())
	assert.Equal(t, "empty group", EmptyGroup.String())
	assert.Equal(t, "uniform", Uniform.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestComputeVariance_PermutationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("report does not depend on run order", prop.ForAll(
		func(docs []Document, seed int64) bool {
			configs := flatAll(docs...)

			shuffled := make([]FlatConfig, len(configs))
			copy(shuffled, configs)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			return cmp.Equal(ComputeVariance(configs), ComputeVariance(shuffled), cmp.AllowUnexported(Canonical{}))
		},
		gen.SliceOfN(4, genDocument(1)),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
