package api

import (
	"errors"
	"fmt"
)

// ErrorCode is the structured code carried in the backend's error body.
// Codes replace the old substring matching on error messages.
type ErrorCode string

const (
	ErrorCodeInvalidTerm ErrorCode = "invalid_term"
	ErrorCodeOutOfStock  ErrorCode = "out_of_stock"
	ErrorCodeNotFound    ErrorCode = "not_found"
	ErrorCodeUnknown     ErrorCode = "unknown"
)

// Error is a structured error reported by the storefront backend.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
}

// UserMessage derives the message shown to the shopper from a submission or
// confirmation error.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrorCodeInvalidTerm:
			return "The selected credit term was rejected. Choose between 1 and 36 months."
		case ErrorCodeOutOfStock:
			return "One of the items in your cart is no longer in stock."
		}
	}
	return "We could not place your order. Please check your connection and try again."
}
