package params

import (
	"maps"
	"slices"
)

// Outcome classifies a variance computation.
type Outcome int

const (
	// Varying means at least one key has more than one distinct value.
	Varying Outcome = iota
	// EmptyGroup means there were no runs to compare.
	EmptyGroup
	// Uniform means there were runs but every key has a single value.
	Uniform
)

func (o Outcome) String() string {
	switch o {
	case Varying:
		return "varying"
	case EmptyGroup:
		return "empty group"
	case Uniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Report lists the keys whose values differ across a group of runs.
type Report struct {
	Outcome Outcome
	// Runs is the number of configs compared.
	Runs int
	// Keys holds the varying keys, sorted.
	Keys []string
	// Values holds the distinct values of each varying key, sorted.
	Values map[string][]Canonical
	// Fallbacks counts leaves that could not be encoded canonically and were
	// rendered with fmt instead.
	Fallbacks int
}

// Accumulator computes a Report incrementally, one flattened config at a time.
// Merging accumulators is commutative and associative, so configs may be
// added in any order or split across accumulators.
type Accumulator struct {
	runs      int
	fallbacks int
	present   map[string]int
	values    map[string]map[Canonical]struct{}
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		present: make(map[string]int),
		values:  make(map[string]map[Canonical]struct{}),
	}
}

// Add records one run's flattened config.
func (a *Accumulator) Add(flat FlatConfig) {
	a.runs++
	for k, v := range flat {
		c, fellBack := canonicalize(v)
		if fellBack {
			a.fallbacks++
		}
		a.present[k]++
		a.set(k)[c] = struct{}{}
	}
}

// Merge folds other into a. other is left unchanged.
func (a *Accumulator) Merge(other *Accumulator) {
	a.runs += other.runs
	a.fallbacks += other.fallbacks
	for k, n := range other.present {
		a.present[k] += n
	}
	for k, vals := range other.values {
		dst := a.set(k)
		for c := range vals {
			dst[c] = struct{}{}
		}
	}
}

func (a *Accumulator) set(key string) map[Canonical]struct{} {
	s, ok := a.values[key]
	if !ok {
		s = make(map[Canonical]struct{})
		a.values[key] = s
	}
	return s
}

// Report builds the variance report for everything added so far. A key that
// some runs lack gets the missing value in its set, so present-in-some and
// absent-in-others counts as varying.
func (a *Accumulator) Report() *Report {
	report := &Report{
		Runs:      a.runs,
		Values:    make(map[string][]Canonical),
		Fallbacks: a.fallbacks,
	}
	if a.runs == 0 {
		report.Outcome = EmptyGroup
		return report
	}

	missing := Canonicalize(Missing)
	for _, k := range slices.Sorted(maps.Keys(a.values)) {
		distinct := slices.Collect(maps.Keys(a.values[k]))
		if _, ok := a.values[k][missing]; !ok && a.present[k] < a.runs {
			distinct = append(distinct, missing)
		}
		if len(distinct) < 2 {
			continue
		}
		slices.SortFunc(distinct, Canonical.Compare)
		report.Keys = append(report.Keys, k)
		report.Values[k] = distinct
	}

	if len(report.Keys) == 0 {
		report.Outcome = Uniform
	} else {
		report.Outcome = Varying
	}
	return report
}

// ComputeVariance reports which keys take more than one distinct value across
// configs.
func ComputeVariance(configs []FlatConfig) *Report {
	acc := NewAccumulator()
	for _, c := range configs {
		acc.Add(c)
	}
	return acc.Report()
}
