package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

// TestAppErrorImplementsError verifies that *AppError satisfies the error interface.
func TestAppErrorImplementsError(t *testing.T) {
	var _ error = (*AppError)(nil)
}

// TestAppErrorErrorFormat verifies the Error() method produces "code: message".
func TestAppErrorErrorFormat(t *testing.T) {
	appErr := &AppError{
		Code:    ErrCodeValidationMissingField,
		Message: "Please fill PH",
	}

	expected := "validation_missing_required_field: Please fill PH"
	if appErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", appErr.Error(), expected)
	}
}

// TestAppErrorUnwrap verifies the error chain support via Unwrap.
func TestAppErrorUnwrap(t *testing.T) {
	underlying := errors.New("connection refused")
	appErr := NewAppError(ErrCodeUpstreamUnavailable, "upstream request failed", underlying)

	if appErr.Unwrap() != underlying {
		t.Errorf("Unwrap() returned unexpected error: got %v, want %v", appErr.Unwrap(), underlying)
	}
	if !errors.Is(fmt.Errorf("submit: %w", appErr), underlying) {
		t.Error("errors.Is should find the underlying error through a wrapped AppError")
	}
}

// TestAppErrorUnwrapNil verifies Unwrap returns nil when no underlying error exists.
func TestAppErrorUnwrapNil(t *testing.T) {
	appErr := NewValidationError(ErrCodeValidationMissingImage, "Please select an image!")

	if appErr.Unwrap() != nil {
		t.Errorf("Unwrap() should return nil when Err is nil, got %v", appErr.Unwrap())
	}
}

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationMissingImage, http.StatusBadRequest},
		{ErrCodeValidationMissingField, http.StatusBadRequest},
		{ErrCodeValidationInvalidJSON, http.StatusBadRequest},
		{ErrCodeUpstreamRateLimited, http.StatusTooManyRequests},
		{ErrCodeUpstreamCircuitOpen, http.StatusServiceUnavailable},
		{ErrCodeUpstreamUnavailable, http.StatusBadGateway},
		{ErrCodeUpstreamDecodeFailed, http.StatusBadGateway},
		{ErrCodeInternalUnexpected, http.StatusInternalServerError},
		{ErrorCode("something_else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	orig := NewAppError(ErrCodeUpstreamBadStatus, "bad status", nil).WithDetails(map[string]any{"status": 500})
	extended := orig.WithDetails(map[string]any{"path": PathDetectDisease})

	if len(orig.Details) != 1 {
		t.Errorf("original details mutated: %v", orig.Details)
	}
	if extended.Details["status"] != 500 || extended.Details["path"] != PathDetectDisease {
		t.Errorf("merged details = %v", extended.Details)
	}
}

func TestErrorClassification(t *testing.T) {
	validation := fmt.Errorf("submit: %w", NewValidationError(ErrCodeValidationMissingField, "Please fill N"))
	upstream := NewAppError(ErrCodeUpstreamDecodeFailed, "response body is not valid JSON", nil)
	plain := errors.New("boom")

	if !IsValidation(validation) {
		t.Errorf("validation error misclassified: code=%q", CodeOf(validation))
	}
	if IsValidation(upstream) || CodeOf(upstream) != ErrCodeUpstreamDecodeFailed {
		t.Errorf("upstream error misclassified: code=%q", CodeOf(upstream))
	}
	if IsValidation(plain) || CodeOf(plain) != "" {
		t.Error("plain error should carry no code")
	}
	if got := UserMessage(validation, "fallback"); got != "Please fill N" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(plain, "fallback"); got != "fallback" {
		t.Errorf("UserMessage() = %q, want fallback", got)
	}
}
