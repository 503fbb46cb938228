// Package errors defines the error categories shared by every layer. Domain packages wrap
// these sentinels with their own context and the HTTP layer maps each category to a status
// code, so handlers never need to know which component failed.
package errors

import (
	"errors"
	"fmt"
)

// Error categories.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates caller-supplied data failed validation. Its message is safe
	// to return to the caller.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates no tenant identity could be established.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMisconfigured indicates the server is missing configuration required by the operation.
	ErrMisconfigured = errors.New("server misconfigured")

	// ErrCorrupted indicates stored data failed an integrity check.
	ErrCorrupted = errors.New("corrupted data")

	// ErrUnavailable indicates a tenant backend could not be reached.
	ErrUnavailable = errors.New("unavailable")
)

// Wrap prefixes err with message while keeping it matchable with Is.
// A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
