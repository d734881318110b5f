package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/seolens/seolens/internal/model"
)

// ErrBodyTooLarge is the underlying error for oversize fetch failures.
var ErrBodyTooLarge = errors.New("response body exceeds configured ceiling")

// Error is a fetch failure classified into the crawl error taxonomy.
// It wraps the underlying error so errors.Is/As still work.
type Error struct {
	// Kind buckets the failure for retry decisions and reporting.
	Kind model.ErrorKind

	// URL is the request URL that failed.
	URL string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Kind extracts the error kind from an error chain. Errors that did not
// originate in this package default to the network kind, which is the
// safe assumption for anything raised while talking to a server.
func Kind(err error) model.ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return model.ErrKindNetwork
}

// Retryable reports whether the failure is worth another attempt.
// Only network-level failures (timeouts, refused connections, resets)
// are retryable; validation and oversize failures will fail identically
// on every attempt.
func Retryable(err error) bool {
	return Kind(err) == model.ErrKindNetwork
}

// IsTimeout reports whether a fetch failure was a deadline or network
// timeout, as opposed to some other transport problem. Both are
// retryable; the distinction only matters for logging.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
