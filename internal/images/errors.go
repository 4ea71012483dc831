package images

import (
	"errors"
	"fmt"
)

// StatusError is returned when the image service answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch cat image: status code %d", e.Code)
}

// TransportError is returned when the request never produced a response
// (DNS failure, connection refused, cancelled context).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach image service: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// LocalIOError is returned when the image could not be written to disk.
type LocalIOError struct {
	Path string
	Err  error
}

func (e *LocalIOError) Error() string {
	return fmt.Sprintf("failed to save cat image to %s: %v", e.Path, e.Err)
}

func (e *LocalIOError) Unwrap() error {
	return e.Err
}

// Describe turns a fetch failure into the message shown to the user
func Describe(err error) string {
	var statusErr *StatusError
	var transportErr *TransportError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Failed to fetch cat image. Status code: %d", statusErr.Code)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("An error occurred: %v", transportErr.Err)
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
