// Package errors provides the structured error type shared by the assistant's components.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode is a stable, machine readable error identifier.
type ErrorCode string

const (
	ErrCodeAdvisoryTimeout       ErrorCode = "ADVISORY_TIMEOUT"
	ErrCodeAdvisoryFailed        ErrorCode = "ADVISORY_FAILED"
	ErrCodeAdvisoryNotConfigured ErrorCode = "ADVISORY_NOT_CONFIGURED"

	ErrCodeMemberNotFound     ErrorCode = "MEMBER_NOT_FOUND"
	ErrCodeMemberLookupFailed ErrorCode = "MEMBER_LOOKUP_FAILED"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the structured error returned across package boundaries.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewAdvisoryTimeoutError reports an LLM call that exceeded its deadline.
func NewAdvisoryTimeoutError(provider string, err error) *StandardError {
	return newError(ErrCodeAdvisoryTimeout, "Advisory provider timeout",
		fmt.Sprintf("provider: %s, error: %s", provider, errDetails(err)), true, err)
}

// NewAdvisoryFailedError reports a failed LLM call.
func NewAdvisoryFailedError(provider string, err error) *StandardError {
	return newError(ErrCodeAdvisoryFailed, "Advisory provider error",
		fmt.Sprintf("provider: %s, error: %s", provider, errDetails(err)), true, err)
}

func NewAdvisoryNotConfiguredError(provider string) *StandardError {
	return newError(ErrCodeAdvisoryNotConfigured, "Advisory provider not configured",
		fmt.Sprintf("provider: %s", provider), false, nil)
}

func NewMemberNotFoundError(talentID string) *StandardError {
	return newError(ErrCodeMemberNotFound, "Talent ID not recognized",
		fmt.Sprintf("talentId: %s", talentID), false, nil)
}

func NewMemberLookupFailedError(source string, err error) *StandardError {
	return newError(ErrCodeMemberLookupFailed, "Member directory lookup failed",
		fmt.Sprintf("source: %s, error: %s", source, errDetails(err)), true, err)
}

func NewSessionStoreFailedError(op string, err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Conversation store operation failed",
		fmt.Sprintf("op: %s, error: %s", op, errDetails(err)), true, err)
}

func NewSessionNotFoundError(conversationID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Conversation not found",
		fmt.Sprintf("conversationId: %s", conversationID), false, nil)
}

func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request", details, false, nil)
}

func NewConfigInvalidError(details string) *StandardError {
	return newError(ErrCodeConfigInvalid, "Invalid configuration", details, false, nil)
}

// Normalize converts any error into a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// IsCode reports whether err is a StandardError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// GetRetryCount returns how many times a caller may retry an operation failing with code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAdvisoryFailed, ErrCodeSessionStoreFailed, ErrCodeMemberLookupFailed:
		return 3
	case ErrCodeAdvisoryTimeout:
		return 1
	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "ADVISORY"):
		return "AI"
	case strings.HasPrefix(codeStr, "MEMBER"):
		return "DIRECTORY"
	case strings.HasPrefix(codeStr, "SESSION"):
		return "STORAGE"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
