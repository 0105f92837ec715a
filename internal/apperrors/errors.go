// Package apperrors defines the error taxonomy shared by the handlers and the
// staging/transcription services, with the HTTP status each kind maps to at
// the request boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for boundary translation.
type Kind string

const (
	KindValidation  Kind = "validation_error"
	KindNotFound    Kind = "not_found"
	KindStorage     Kind = "storage_error"
	KindSubmission  Kind = "job_submission_error"
	KindResultParse Kind = "result_parse_error"
	KindInternal    Kind = "internal_error"
)

// AppError carries a caller-safe message and an HTTP status alongside the
// wrapped cause. The cause is for logs only and is never serialized.
type AppError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Validation reports malformed or oversized client input.
func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NotFound reports an unknown job or a missing referenced object.
func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// Storage reports an upload or fetch failure against the object store.
func Storage(message string) *AppError {
	return &AppError{Kind: KindStorage, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// Submission reports a rejection from the external transcription service.
func Submission(message string) *AppError {
	return &AppError{Kind: KindSubmission, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// ResultParse reports an unexpected completed-job payload. This is distinct
// from the job itself having failed.
func ResultParse(message string) *AppError {
	return &AppError{Kind: KindResultParse, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// Internal reports an unexpected failure with no more specific kind.
func Internal(message string) *AppError {
	return &AppError{Kind: KindInternal, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// FromError extracts an *AppError from err, or wraps err as an internal error
// so the boundary never leaks raw diagnostic detail.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:       KindInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      err,
	}
}
