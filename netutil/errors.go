package netutil

import (
	"errors"
	"fmt"
)

var (
	// ErrHTTPStatus matches every *HTTPError.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	ErrClosed     = errors.New("connection closed")
)

// HTTPError reports a response outside the 2xx range.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("netutil: %s: %s", e.URL, e.Status)
}

func (e *HTTPError) Unwrap() error { return ErrHTTPStatus }
