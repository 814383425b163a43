package types

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Complete error code constants.
// Controllers and clients MUST use these constants instead of hardcoded strings.
const (
	// Validation (400). Detected client-side; no network call is made.
	ErrCodeValidationMissingImage ErrorCode = "validation_missing_image"
	ErrCodeValidationMissingField ErrorCode = "validation_missing_required_field"
	ErrCodeValidationUnknownField ErrorCode = "validation_unknown_field"
	ErrCodeValidationInvalidJSON  ErrorCode = "validation_invalid_json"

	// Upstream (502/503). Transport failures talking to the inference or weather service.
	ErrCodeUpstreamUnavailable  ErrorCode = "upstream_unavailable"
	ErrCodeUpstreamRateLimited  ErrorCode = "upstream_rate_limited"
	ErrCodeUpstreamCircuitOpen  ErrorCode = "upstream_circuit_open"
	ErrCodeUpstreamBadStatus    ErrorCode = "upstream_unexpected_status"
	ErrCodeUpstreamDecodeFailed ErrorCode = "upstream_decode_failed"

	// Internal (500)
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
)

// HTTPStatus maps an ErrorCode to its corresponding HTTP status code.
// Used by the stub service to translate AppErrors into HTTP responses.
// Returns 500 for unrecognized error codes as a safe default.
func (c ErrorCode) HTTPStatus() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "validation_"):
		return http.StatusBadRequest // 400
	case c == ErrCodeUpstreamRateLimited:
		return http.StatusTooManyRequests // 429
	case c == ErrCodeUpstreamCircuitOpen:
		return http.StatusServiceUnavailable // 503
	case strings.HasPrefix(s, "upstream_"):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}

// AppError is the standard application error type used throughout the module.
// Controllers surface AppErrors to their callers; the state machines themselves
// only ever store a generic, user-facing message.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code corresponding to this error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error with the provided details merged in.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: merged,
	}
}

// NewAppError creates a new AppError with the given code, message, and optional
// underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a client-side validation error. The message is
// meant to be shown to the user verbatim.
func NewValidationError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// CodeOf extracts the ErrorCode from the first AppError in err's chain.
// Returns the empty code if err carries no AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsValidation reports whether err is a client-side validation error.
func IsValidation(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "validation_")
}

// UserMessage returns the message of the first AppError in err's chain, or
// fallback when there is none.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
