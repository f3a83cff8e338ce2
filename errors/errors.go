package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. It is never serialized.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Authentication taxonomy ---

// DuplicateUser is returned when the store reports a uniqueness violation on username.
// The transport status is 406, matching the registration contract.
func DuplicateUser(message, username string) *AppError {
	return &AppError{
		Code: ErrCodeUserExists, Message: message,
		HTTPStatus: http.StatusNotAcceptable, Retryable: false,
		Details: map[string]any{"username": username},
	}
}

// Transient wraps any non-classified store or infrastructure failure.
// The message is generic; the cause stays server-side.
func Transient(message string, cause error) *AppError {
	if message == "" {
		message = "Something went wrong, please try again later."
	}
	return &AppError{
		Code: ErrCodeTransient, Message: message,
		HTTPStatus: http.StatusNotAcceptable, Retryable: true, Cause: cause,
	}
}

// Unauthorized creates a new AppError for rejected credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// InvalidToken creates a new AppError for a session token that failed verification.
func InvalidToken(reason string) *AppError {
	e := &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid authentication token. Please log in again.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
	if reason != "" {
		e.WithDetail("reason", reason)
	}
	return e
}

// NotAcceptable is returned by route guards when no verified identity is present.
func NotAcceptable(reason string) *AppError {
	if reason == "" {
		reason = "We could not verify you, please log in again."
	}
	return &AppError{
		Code: ErrCodeNotAcceptable, Message: reason,
		HTTPStatus: http.StatusNotAcceptable, Retryable: false,
	}
}

// --- Generic constructors ---

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
