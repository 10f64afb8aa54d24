package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ServerError is a non-2xx response. Message is the server's plain-text diagnostic.
type ServerError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// NetworkError is a transport failure: DNS, refused connection, reset, cancelled context.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsServerError reports whether err wraps a *ServerError with the given status.
// A zero status matches any server error.
func IsServerError(err error, status int) bool {
	var se *ServerError
	if !errors.As(err, &se) {
		return false
	}
	return status == 0 || se.Status == status
}

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
