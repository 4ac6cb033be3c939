package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport wraps network failures: the API was not reached or the
	// response could not be read.
	ErrTransport = errors.New("book api unreachable")
	// ErrNotFound matches a 404 StatusError.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches a 401 or 403 StatusError.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status code: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status code: %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}
