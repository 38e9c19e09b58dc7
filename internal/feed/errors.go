package feed

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError means the request did not complete: connection refused,
// DNS failure, transport timeout, cancelled context.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Method, e.StatusCode, http.StatusText(e.StatusCode))
}

// DecodeError is returned when a 2xx body is not a JSON array of posts.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode posts: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsProtocol reports whether err is a status or decode failure.
func IsProtocol(err error) bool {
	var se *StatusError
	var de *DecodeError
	return errors.As(err, &se) || errors.As(err, &de)
}

// StatusCode extracts the HTTP status carried by err, or 0 when there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
