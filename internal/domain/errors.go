package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint was violated.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNetwork covers transport and backend failures.
	ErrNetwork = errors.New("network error")
	// ErrData covers malformed or missing catalog data.
	ErrData = errors.New("data error")
	// ErrValidation covers rejected user input.
	ErrValidation = errors.New("validation error")
	// ErrPayment covers payment processing failures.
	ErrPayment = errors.New("payment error")

	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// Message returns the human-readable text shown in a dismissible alert.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case errors.Is(err, ErrNetwork):
		return capitalize(msg) + ". Please check your connection and try again."
	case errors.Is(err, ErrPayment):
		return capitalize(msg) + ". Please try a different payment method."
	default:
		return capitalize(msg)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
