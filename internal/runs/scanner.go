package runs

import (
	"fmt"
	"iter"
	"time"
)

// Feed yields runs newest first. A non-nil error ends the feed.
type Feed = iter.Seq2[Run, error]

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithStrictOrder makes the scan fail with ErrFeedOrder when the feed yields a
// run newer than the previous one.
func WithStrictOrder() ScanOption {
	return func(s *Scanner) {
		s.strict = true
	}
}

// Scanner yields the runs of a feed created within a time window.
type Scanner struct {
	threshold time.Time
	strict    bool
	started   bool
	yielded   int
	running   int
}

// NewScanner returns a scanner for runs created at or after now - window.
func NewScanner(now time.Time, window time.Duration, opts ...ScanOption) *Scanner {
	s := &Scanner{threshold: now.Add(-window)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the oldest creation time the scan accepts.
func (s *Scanner) Threshold() time.Time {
	return s.threshold
}

// Scan returns a single-use sequence over the runs of feed inside the window.
//
// The feed must be ordered newest first. That ordering is a precondition and
// is not verified outside strict mode: the scan stops at the first run older
// than the threshold without yielding it or pulling anything further, which is
// only correct because every later run is older still.
//
// A run whose creation time cannot be parsed ends the scan with
// ErrMalformedTimestamp; skipping it would break the stopping rule above.
// Feed errors are passed through unchanged.
func (s *Scanner) Scan(feed Feed) iter.Seq2[Run, error] {
	return func(yield func(Run, error) bool) {
		if s.started {
			yield(Run{}, ErrScanConsumed)
			return
		}
		s.started = true

		var prev time.Time
		for run, err := range feed {
			if err != nil {
				yield(Run{}, err)
				return
			}

			created, err := run.Created()
			if err != nil {
				yield(Run{}, err)
				return
			}
			if created.Before(s.threshold) {
				return
			}

			if s.strict && !prev.IsZero() && created.After(prev) {
				yield(Run{}, fmt.Errorf("%w: run %s created %s after %s",
					ErrFeedOrder, run.ID, created.Format(time.RFC3339), prev.Format(time.RFC3339)))
				return
			}
			prev = created

			s.yielded++
			if run.State == StateRunning {
				s.running++
			}
			if !yield(run, nil) {
				return
			}
		}
	}
}

// Count returns the number of runs yielded so far.
func (s *Scanner) Count() int {
	return s.yielded
}

// RunningCount returns how many yielded runs are in the running state.
func (s *Scanner) RunningCount() int {
	return s.running
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Run, error]) ([]Run, error) {
	var out []Run
	for run, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, run)
	}
	return out, nil
}
