package push

import (
	"errors"
	"fmt"
)

// Sentinel errors for common session and server error conditions.
var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("push: session closed")

	// ErrSessionNotFound is returned when a session ID does not exist.
	ErrSessionNotFound = errors.New("push: session not found")

	// ErrMaxSessionsReached is returned when the maximum number of sessions is reached.
	ErrMaxSessionsReached = errors.New("push: max sessions reached")

	// ErrInvalidHandshake is returned when the hello exchange fails.
	ErrInvalidHandshake = errors.New("push: invalid handshake")

	// ErrServerClosed is returned when the server has been shut down.
	ErrServerClosed = errors.New("push: server closed")

	// ErrNoSnapshot is returned when resuming a session that has no stored snapshot.
	ErrNoSnapshot = errors.New("push: no snapshot for session")
)

// SessionError wraps an error with session context for debugging.
type SessionError struct {
	SessionID string
	Op        string // Operation that failed
	Err       error  // Underlying error
}

// Error returns the error message with session context.
func (e *SessionError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("push: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("push: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError.
func NewSessionError(sessionID, op string, err error) *SessionError {
	return &SessionError{
		SessionID: sessionID,
		Op:        op,
		Err:       err,
	}
}
