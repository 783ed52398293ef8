package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error codes shared by every handler.
const (
	CodeInternal     = "INTERNAL"
	CodeBadRequest   = "BAD_REQUEST"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithDetails attaches a details payload and returns the same error.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// BadRequest reports a malformed request.
func BadRequest(message string, err error) *AppError {
	return NewAppError(CodeBadRequest, message, http.StatusBadRequest, err)
}

// Validation reports a semantically invalid write.
func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, http.StatusUnprocessableEntity, err)
}

// NotFound reports a missing record.
func NotFound(message string) *AppError {
	return NewAppError(CodeNotFound, message, http.StatusNotFound, nil)
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// FromDB converts storage errors into AppErrors: missing rows become 404 and
// unique violations 409. Other errors are returned unchanged.
func FromDB(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return NotFound(what + " not found")
	case IsUniqueViolation(err):
		return NewAppError(CodeConflict, what+" already exists", http.StatusConflict, err)
	}
	return err
}
