package dashboard

import (
	"errors"

	"github.com/dmitrijs2005/carpark/internal/client/client"
)

// ValidationError is input rejected before any request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// messageFor picks the text shown for err: the validation or server message
// when there is one, otherwise fallback.
func messageFor(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	var ae *client.APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
