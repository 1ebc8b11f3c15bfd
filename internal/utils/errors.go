// internal/utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindConflict     ErrorKind = "conflict"
	KindOutOfStock   ErrorKind = "out_of_stock"
	KindUpstream     ErrorKind = "upstream"
)

// AppError is a categorised failure that handlers translate into an envelope.
// Message is an i18n key formatted with Args.
type AppError struct {
	Kind    ErrorKind
	Message string
	Args    []interface{}
	Details interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(kind ErrorKind, key string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: key, Args: args}
}

func NewValidationError(key string, args ...interface{}) *AppError {
	return newAppError(KindValidation, key, args...)
}

func NewNotFoundError(key string) *AppError {
	return newAppError(KindNotFound, key)
}

func NewUnauthorizedError(key string) *AppError {
	return newAppError(KindUnauthorized, key)
}

func NewForbiddenError(key string) *AppError {
	return newAppError(KindForbidden, key)
}

func NewConflictError(key string) *AppError {
	return newAppError(KindConflict, key)
}

func NewOutOfStockError(key string, args ...interface{}) *AppError {
	return newAppError(KindOutOfStock, key, args...)
}

func NewUpstreamError(key string, err error) *AppError {
	e := newAppError(KindUpstream, key)
	e.Err = err
	return e
}

// WithDetails attaches structured details, such as field validation errors.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

var errorStatus = map[ErrorKind]struct {
	status int
	code   string
}{
	KindValidation:   {http.StatusBadRequest, "VALIDATION_ERROR"},
	KindNotFound:     {http.StatusNotFound, "NOT_FOUND"},
	KindUnauthorized: {http.StatusUnauthorized, "UNAUTHORIZED"},
	KindForbidden:    {http.StatusForbidden, "FORBIDDEN"},
	// Duplicates answer 400, matching what existing clients expect.
	KindConflict:   {http.StatusBadRequest, "CONFLICT"},
	KindOutOfStock: {http.StatusBadRequest, "OUT_OF_STOCK"},
	KindUpstream:   {http.StatusInternalServerError, "UPSTREAM_FAILURE"},
}

// StatusFor returns the HTTP status and error code for err.
func StatusFor(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if s, ok := errorStatus[appErr.Kind]; ok {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
