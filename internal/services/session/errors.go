package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionActive   SessionError = "a session is already active"
	ErrNoActiveSession SessionError = "no active session"
	ErrNoSessions      SessionError = "no sessions recorded yet"
	ErrAlreadyVoted    SessionError = "voter has already voted"
	ErrNotVoted        SessionError = "voter has not voted"
	ErrVoteClosed      SessionError = "vote is closed"
	ErrNilConfig       SessionError = "config cannot be nil"
	ErrNilRepository   SessionError = "session repository cannot be nil"
	ErrNilService      SessionError = "session service cannot be nil"
	ErrInvalidGoal     SessionError = "vote goal must be at least 1"
)
