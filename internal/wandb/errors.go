package wandb

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
)

var (
	// ErrRunNotFound is returned when the requested run does not exist
	ErrRunNotFound = errors.New("run not found")
	// ErrProjectNotFound is returned when the entity has no such project
	ErrProjectNotFound = errors.New("project not found")
)

// StatusError is a non-200 HTTP response from the API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Body)
}

// GraphQLError holds the errors array of a GraphQL response
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// transientText matches transport failures that only surface as text
var transientText = []string{
	"connection reset by peer",
	"connection refused",
	"i/o timeout",
	"TLS handshake timeout",
	"unexpected EOF",
}

// IsRetryable reports whether err is a transient failure worth retrying:
// a 5xx or 429 response, a network timeout or a dropped connection.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	msg := err.Error()
	for _, pattern := range transientText {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
