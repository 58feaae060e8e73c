// Package runs models experiment runs and turns a newest-first run feed into
// the rows of the recent-runs table.
package runs

import (
	"fmt"
	"strings"
	"time"

	"github.com/Backland-Labs/wbpeek/internal/params"
)

// State is the lifecycle state the tracking service reports for a run.
type State string

const (
	StateUnknown   State = "unknown"
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateFinished  State = "finished"
	StateFailed    State = "failed"
	StateCrashed   State = "crashed"
	StateKilled    State = "killed"
	StatePreempted State = "preempted"
)

// ParseState normalizes a service state. Empty input is StateUnknown;
// unrecognized states are kept as reported.
func ParseState(s string) State {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StateUnknown
	}
	return State(s)
}

// stepKey is the summary field holding the run's current step.
const stepKey = "_step"

// Run is a snapshot of one run as fetched from the tracking service.
type Run struct {
	// ID is the short run id used in URLs and on the command line.
	ID string
	// Name is the display name; may be empty.
	Name string
	// Group is the run group; empty when the run has none.
	Group string
	State State
	// CreatedAt is the creation time exactly as the service sent it.
	CreatedAt string
	Config    params.Document
	Summary   params.Document
	URL       string
	// StorageID is the service's internal node id, needed to delete the run.
	StorageID string
}

// DisplayName returns the name, falling back to the id.
func (r Run) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Created parses CreatedAt.
func (r Run) Created() (time.Time, error) {
	t, err := ParseTimestamp(r.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("run %s: %w", r.ID, err)
	}
	return t, nil
}

// Step returns the run's current step from its summary, or "0".
func (r Run) Step() string {
	v, ok := r.Summary[stepKey]
	if !ok {
		return "0"
	}
	if _, isNull := v.(params.Null); isNull {
		return "0"
	}
	return params.Canonicalize(v).String()
}

// LogsURL returns the link to the run's log page.
func (r Run) LogsURL() string {
	return r.URL + "/logs"
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses a service timestamp. Timestamps without a zone are
// UTC. The result is always in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}
