package puppybowl

import (
	"errors"
	"fmt"
)

// ClientError is a custom error type for client configuration errors
type ClientError string

// Error implements the error interface
func (e ClientError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        ClientError = "config cannot be nil"
	ErrEmptyBaseURL     ClientError = "base URL cannot be empty"
	ErrNilUUIDGenerator ClientError = "UUID generator cannot be nil"
	ErrNilInput         ClientError = "input cannot be nil"
)

// ErrNetwork matches every failure to talk to the players API
var ErrNetwork = errors.New("network error")

// ErrorKind tags what went wrong with a request
type ErrorKind string

const (
	// ErrorKindTransport means no response was received
	ErrorKindTransport ErrorKind = "transport"

	// ErrorKindStatus means the server answered with a non-2xx status
	ErrorKindStatus ErrorKind = "status"

	// ErrorKindDecode means the response body could not be understood
	ErrorKindDecode ErrorKind = "decode"
)

// NetworkError describes a failed request. Kind is decided where the failure happens.
type NetworkError struct {
	Kind   ErrorKind
	Method string
	URL    string

	// StatusCode and Body are set for ErrorKindStatus
	StatusCode int
	Body       string

	Err error
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case ErrorKindStatus:
		return fmt.Sprintf("%s %s: server returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	case ErrorKindDecode:
		return fmt.Sprintf("%s %s: failed to decode response: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNetwork) match any NetworkError
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
