package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// DefaultErrorMessage is used when a failed response carries no error text.
const DefaultErrorMessage = "Request failed"

// APIError is a non-2xx response. Payload is the parsed JSON object body, or
// empty when the body was missing or not a JSON object.
type APIError struct {
	Status  int
	Message string
	Payload map[string]any
}

func (e *APIError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrUnauthorized) true for 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

func newAPIError(status int, payload map[string]any) *APIError {
	msg := DefaultErrorMessage
	if s, ok := payload["error"].(string); ok && s != "" {
		msg = s
	}
	return &APIError{Status: status, Message: msg, Payload: payload}
}
