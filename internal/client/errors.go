package client

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a response body does not match the catalog contract.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is a non-success HTTP response from the catalog API.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: status %d", e.Code)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
