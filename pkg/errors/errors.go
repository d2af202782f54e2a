// Package errors defines the typed errors shared by the graph, the loader and the API.
// Each error carries the HTTP status the REST layer answers with.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError
type ErrorType string

const (
	// Graph invariants and caller input
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"

	// The graph or the people source cannot serve right now
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrorTypeInternal    ErrorType = "INTERNAL"

	// People source failures
	ErrorTypeNetwork  ErrorType = "NETWORK"
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// statusFor maps every ErrorType to the HTTP status it is reported with
var statusFor = map[ErrorType]int{
	ErrorTypeValidation:  http.StatusBadRequest,
	ErrorTypeNotFound:    http.StatusNotFound,
	ErrorTypeConflict:    http.StatusConflict,
	ErrorTypeUnavailable: http.StatusServiceUnavailable,
	ErrorTypeInternal:    http.StatusInternalServerError,
	ErrorTypeNetwork:     http.StatusBadGateway,
	ErrorTypeExternal:    http.StatusBadGateway,
}

// AppError is an error with a type, a user-facing message and optional details
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

func newError(errType ErrorType, message string) *AppError {
	return &AppError{Type: errType, Message: message, HTTPStatus: statusFor[errType]}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches details that the REST layer returns with the error
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause records the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError reports rejected input or a violated graph invariant
func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, message)
}

// NewNotFoundError reports a missing resource
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewUnknownNodeError reports a node id that is not in the graph
func NewUnknownNodeError(role, id string) *AppError {
	return NewNotFoundError(role+" "+id).WithDetails(map[string]interface{}{"node": id})
}

// NewConflictError reports a duplicate node, link or registration
func NewConflictError(message string) *AppError {
	return newError(ErrorTypeConflict, message)
}

// NewInternalError reports a failure the caller cannot act on
func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, message)
}

// NewUnavailableError reports a dependency that cannot serve right now
func NewUnavailableError(service string) *AppError {
	return newError(ErrorTypeUnavailable, fmt.Sprintf("%s is unavailable", service))
}

// NewGraphUnavailableError reports that queries cannot run because the graph is not ready.
// status is the lifecycle state of the published snapshot, empty when nothing was published.
func NewGraphUnavailableError(status string, cause error) *AppError {
	appErr := NewUnavailableError("graph")
	if status != "" {
		appErr.WithDetails(map[string]interface{}{"status": status})
	}
	if cause != nil {
		appErr.WithCause(cause)
	}
	return appErr
}

// NewNetworkError reports a transport failure while talking to the people source
func NewNetworkError(message string, err error) *AppError {
	return newError(ErrorTypeNetwork, message).WithCause(err)
}

// NewExternalError reports a bad response from an external service
func NewExternalError(service string, err error) *AppError {
	return newError(ErrorTypeExternal, fmt.Sprintf("external service '%s' error", service)).WithCause(err)
}

// GetAppError returns the first AppError in err's chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks the type of the first AppError in err's chain
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

func IsConflict(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

func IsUnavailable(err error) bool {
	return IsType(err, ErrorTypeUnavailable)
}

// HTTPStatus returns the HTTP status carried by err, or 500 for plain errors
func HTTPStatus(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Wrap prefixes err's message with context. An AppError keeps its type and status;
// the returned error is a copy, so an error shared between callers is never rewritten.
// Any other error becomes an internal error caused by err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	if appErr := GetAppError(err); appErr != nil {
		wrapped := *appErr
		wrapped.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return &wrapped
	}

	return NewInternalError(message).WithCause(err)
}
