// Package params compares the hyperparameter configs of experiment runs.
//
// A run config is a nested key-value document. Flatten collapses it into
// dotted paths, Canonicalize turns each leaf into a comparable form, and
// ComputeVariance (or an Accumulator) reports the keys whose values differ
// within a group of runs.
//
// Example usage:
//
//	acc := params.NewAccumulator()
//	for _, run := range groupRuns {
//	    acc.Add(params.Flatten(run.Config, ""))
//	}
//
//	report := acc.Report()
//	for _, key := range report.Keys {
//	    fmt.Println(key, report.Values[key])
//	}
package params
