package api

import "fmt"

// ErrorCode classifies a failed request
type ErrorCode string

// ErrorCode constants
const (
	ErrorCodeNetwork  ErrorCode = "network"  // request never produced a response
	ErrorCodeDecode   ErrorCode = "decode"   // response body could not be read or decoded
	ErrorCodeRejected ErrorCode = "rejected" // the service refused the request (4xx or success=false)
	ErrorCodeServer   ErrorCode = "server"   // the service failed (5xx)
)

// APIError represents a failed call to the form service
type APIError struct {
	Operation  string    // "register" or "fetch_form"
	Code       ErrorCode // Error classification code
	StatusCode int       // HTTP status, 0 when no response was received
	Message    string    // Human-readable message, safe to show to the user
	Cause      error     // Underlying error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Operation, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *APIError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message intended for display
func (e *APIError) UserMessage() string {
	return e.Message
}

func newAPIError(op string, code ErrorCode, status int, message string, cause error) *APIError {
	return &APIError{
		Operation:  op,
		Code:       code,
		StatusCode: status,
		Message:    message,
		Cause:      cause,
	}
}

func codeForStatus(status int) ErrorCode {
	if status >= 500 {
		return ErrorCodeServer
	}
	return ErrorCodeRejected
}
