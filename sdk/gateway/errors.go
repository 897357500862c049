package gateway

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a 404 from the backend: the referenced chat or message
// no longer exists server-side. Matched via errors.Is on a StatusError.
var ErrNotFound = errors.New("gateway: not found")

// TransportError reports that the request never produced a usable response:
// connection refused, DNS failure, timeout, cancelled context.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrNotFound
	}
	return nil
}

// DecodeError reports a 2xx response whose body could not be decoded or was
// missing required fields. Callers treat it like an unavailable gateway but
// it is kept distinct for diagnostics.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gateway: %s: bad response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
