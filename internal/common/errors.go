// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values and
// KindOf to classify an error at the transport boundary.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ValidationError reports request input that failed validation. Missing
// lists the absent required fields, in declaration order.
type ValidationError struct {
	Message string
	Missing []string
}

// NewMissingFieldsError builds a ValidationError for absent required fields.
func NewMissingFieldsError(message string, missing ...string) *ValidationError {
	return &ValidationError{Message: message, Missing: missing}
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Missing, ", ")
}

// Is makes errors.Is(err, ErrorValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// ErrorKind classifies errors for the transport boundary.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindForbidden
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// KindOf maps an error to its ErrorKind. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrorValidation):
		return KindValidation
	case errors.Is(err, ErrorAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrorUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrRefreshTokenExpired):
		return KindAuthentication
	case errors.Is(err, ErrorForbidden):
		return KindForbidden
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
