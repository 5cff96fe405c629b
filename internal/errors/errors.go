package errors

import "fmt"

// ErrorCode represents a scout error code.
type ErrorCode string

const (
	ErrNoActiveSession ErrorCode = "NO_ACTIVE_SESSION" // no session.json in the local workspace
	ErrSessionNotFound ErrorCode = "SESSION_NOT_FOUND" // unknown session id in the global store
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"   // bad or missing input
	ErrInternal        ErrorCode = "INTERNAL"          // unexpected failure (unwritable root, etc.)
)

// ScoutError represents a structured error with code and details.
type ScoutError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ScoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNoActiveSession creates an error for operations that need a local session.
func NewNoActiveSession(localRoot string) *ScoutError {
	return &ScoutError{
		Code:    ErrNoActiveSession,
		Message: fmt.Sprintf("no active session found in %s", localRoot),
		Details: map[string]any{"local_root": localRoot},
	}
}

// NewSessionNotFound creates an error for an unknown session id.
func NewSessionNotFound(id string) *ScoutError {
	return &ScoutError{
		Code:    ErrSessionNotFound,
		Message: fmt.Sprintf("session not found: %s", id),
		Details: map[string]any{"session_id": id},
	}
}

// NewInvalidRequest creates an error for invalid parameters.
func NewInvalidRequest(msg string) *ScoutError {
	return &ScoutError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *ScoutError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ScoutError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a ScoutError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ScoutError); ok {
		return sErr.Code == code
	}
	return false
}
