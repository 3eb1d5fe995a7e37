package rplog

// RPLogError is a custom error type for RP log errors
type RPLogError string

// Error implements the error interface
func (e RPLogError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrLogNotFound     RPLogError = "RP log not found"
	ErrNoLogs          RPLogError = "no RP logs recorded yet"
	ErrUnknownCategory RPLogError = "unknown leaderboard category"
	ErrNilConfig       RPLogError = "config cannot be nil"
	ErrNilRepository   RPLogError = "RP log repository cannot be nil"
	ErrNilResolver     RPLogError = "member resolver cannot be nil"
)
