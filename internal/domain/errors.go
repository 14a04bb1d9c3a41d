package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("authorization required")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrSlotTaken    = errors.New("the selected time slot is already booked")
	ErrUnavailable  = errors.New("service temporarily unavailable")
)

// InvalidRequestError names the request field that failed validation so
// the API can report it back to the caller.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

func NewInvalidRequest(field, reason string) *InvalidRequestError {
	return &InvalidRequestError{Field: field, Reason: reason}
}
