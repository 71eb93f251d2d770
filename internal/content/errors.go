package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("content: not found")
	// ErrMalformed is returned when a response does not have the expected shape.
	ErrMalformed = errors.New("content: malformed response")
)

// APIError is a non-2xx answer (or a transport failure when StatusCode is 0).
type APIError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("content api error operation=%s status=%d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("content api error operation=%s status=%d: %v", e.Operation, e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }
