package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin console
var (
	// Login errors
	ErrInvalidMobile        = errors.New("invalid mobile number")
	ErrInvalidMPIN          = errors.New("invalid mpin")
	ErrInvalidLoginResponse = errors.New("invalid response from server")
	ErrLoginRejected        = errors.New("login rejected")

	// Session errors
	ErrEmptyToken       = errors.New("token is empty")
	ErrInvalidProfile   = errors.New("invalid user profile")
	ErrMalformedSession = errors.New("malformed session data")

	// Remote API errors
	ErrUnauthorized = errors.New("authentication rejected")
	ErrBadBaseURL   = errors.New("invalid api base url")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
