package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the closed taxonomy of failures the service can surface. Every
// repository and service error is one of these; the HTTP layer maps each kind
// to a distinct status code.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindValidation  Kind = "validation"
	KindUnavailable Kind = "unavailable"
	KindAborted     Kind = "aborted"
	KindInternal    Kind = "internal"
)

// Error represents an application error.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindAborted:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new Error.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error   { return New(KindNotFound, message, nil) }
func Conflict(message string) *Error   { return New(KindConflict, message, nil) }
func Validation(err error) *Error      { return New(KindValidation, "Invalid request", err) }
func Unavailable(err error) *Error     { return New(KindUnavailable, "Storage unavailable", err) }
func Aborted(err error) *Error         { return New(KindAborted, "Request aborted", err) }
func Internal(err error) *Error        { return New(KindInternal, "Internal error", err) }
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// KindOf extracts the taxonomy kind from any error. Errors produced outside
// the taxonomy count as internal.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

// Respond writes the uniform error envelope. The body keeps the historical
// {"error": "..."} shape and adds the machine-readable kind additively.
func Respond(c *gin.Context, err error) {
	appErr, ok := err.(*Error)
	if !ok {
		appErr = Internal(err)
	}
	c.JSON(appErr.Status(), gin.H{"error": appErr.Message, "kind": appErr.Kind})
}
