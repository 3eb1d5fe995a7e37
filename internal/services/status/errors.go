package status

// StatusError is a custom error type for status poller errors
type StatusError string

// Error implements the error interface
func (e StatusError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     StatusError = "config cannot be nil"
	ErrNilClient     StatusError = "status client cannot be nil"
	ErrNilMessenger  StatusError = "messenger cannot be nil"
	ErrEmptyURL      StatusError = "API URL cannot be empty"
	ErrEmptyChannel  StatusError = "status channel ID cannot be empty"
	ErrMissingAPIKey StatusError = "API key is not configured"
)
