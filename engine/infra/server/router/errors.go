package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/post"
)

// Error codes
const (
	ErrInternalCode           = "INTERNAL_ERROR"
	ErrBadRequestCode         = "BAD_REQUEST"
	ErrNotFoundCode           = "NOT_FOUND"
	ErrServiceUnavailableCode = "SERVICE_UNAVAILABLE"
)

// Error messages
const (
	ErrMsgAppStateNotInitialized = "application state not initialized"
	ErrMsgStorageUnavailable     = "storage unavailable"
)

// Error represents errors that can occur during request handling
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewServerError creates a new Error
func NewServerError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapServerError wraps an existing error with a server error
func WrapServerError(code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromDomain maps repository errors onto a server error code.
func FromDomain(err error) *Error {
	if err == nil {
		return nil
	}
	var serr *Error
	if errors.As(err, &serr) {
		return serr
	}
	if errors.Is(err, post.ErrNotFound) {
		return WrapServerError(ErrNotFoundCode, "post not found", err)
	}
	if _, ok := post.IsValidation(err); ok {
		return WrapServerError(ErrBadRequestCode, err.Error(), err)
	}
	return WrapServerError(ErrInternalCode, ErrMsgStorageUnavailable, err)
}

// StatusCode returns the HTTP status for the error code.
func (e *Error) StatusCode() int {
	return getStatusCode(e.Code)
}

// RespondWithError writes the JSON error envelope used by the machine-readable endpoints.
// Internal details are never serialized.
func RespondWithError(c *gin.Context, err *Error) {
	status := err.StatusCode()
	body := &Error{Code: err.Code, Message: err.Message}
	if status < http.StatusInternalServerError && err.Err != nil {
		body.Details = err.Err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"status": "error",
		"error":  body,
	})
}

// getStatusCode returns the appropriate HTTP status code for an error code
func getStatusCode(code string) int {
	switch code {
	case ErrBadRequestCode:
		return http.StatusBadRequest
	case ErrNotFoundCode:
		return http.StatusNotFound
	case ErrServiceUnavailableCode:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
