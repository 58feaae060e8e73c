package runs

import "errors"

var (
	// ErrMalformedTimestamp is returned when a run's creation time cannot be
	// parsed. It aborts a scan.
	ErrMalformedTimestamp = errors.New("malformed run timestamp")

	// ErrInvalidFilter is returned for a filter specification that is not a
	// JSON object.
	ErrInvalidFilter = errors.New("invalid filters")

	// ErrFeedOrder is returned in strict mode when the feed yields a run newer
	// than the one before it.
	ErrFeedOrder = errors.New("run feed is not in descending creation order")

	// ErrScanConsumed is returned when a scan is iterated a second time.
	ErrScanConsumed = errors.New("run scan already consumed")
)
