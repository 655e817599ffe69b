package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrorNotFound      ErrorCode = "NOT_FOUND"
	ErrorConflict      ErrorCode = "CONFLICT"
	ErrorConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrorRateLimited   ErrorCode = "RATE_LIMITED"
	ErrorUpstream      ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal      ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// providerLabels names the upstream in operator-facing messages, keyed by Reason.
var providerLabels = map[string]string{
	reasonGemini:            "Gemini API Error",
	reasonGeminiRateLimited: "Gemini API Error",
	reasonGeminiEmpty:       "Gemini API Error",
	reasonTwilio:            "Twilio API Error",
	reasonSMTP:              "Email Error",
}

// Public renders the message shown to operators.
func (e *Error) Public() string {
	if e == nil {
		return ""
	}
	detail := e.Reason
	if e.Err != nil {
		detail = e.Err.Error()
	}
	switch e.Code {
	case ErrorConfiguration:
		return "Server configuration error: " + detail
	case ErrorUpstream, ErrorRateLimited:
		if label, ok := providerLabels[e.Reason]; ok {
			return label + ": " + detail
		}
		return "Provider error: " + detail
	case ErrorInternal:
		return "An unknown error occurred"
	default:
		return detail
	}
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// AsError returns err as *Error, wrapping anything else as an internal error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(ErrorInternal, "unexpected", err)
}

func hasCode(err error, codes ...ErrorCode) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	for _, c := range codes {
		if e.Code == c {
			return true
		}
	}
	return false
}

// IsConfigurationError reports whether err is a missing-credential failure.
func IsConfigurationError(err error) bool { return hasCode(err, ErrorConfiguration) }

// IsProviderError reports whether err came from an external provider call.
func IsProviderError(err error) bool { return hasCode(err, ErrorUpstream, ErrorRateLimited) }
