package session

import (
	"time"

	"github.com/sfcrp/sfcrp-bot/internal/common/clock"
	"github.com/sfcrp/sfcrp-bot/internal/models"
	sessionRepo "github.com/sfcrp/sfcrp-bot/internal/repositories/session"
)

// DefaultHistoryLimit is how many sessions GetHistory returns when the
// caller does not ask for a specific count.
const DefaultHistoryLimit = 5

// Config holds configuration for the session service
type Config struct {
	// Repo is the session document store
	Repo sessionRepo.Repository

	// Clock supplies timestamps; defaults to the system clock
	Clock clock.Clock
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	// HostID is the Discord user ID of the member starting the session
	HostID string

	// HostName is the display name of the host
	HostName string

	// VoteInitiated is true when the start was triggered by a community vote
	VoteInitiated bool

	// VoterCount is the number of unique voters when vote-initiated
	VoterCount int
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	// Session is the newly opened session
	Session *models.Session
}

// EndSessionInput contains parameters for ending the active session
type EndSessionInput struct {
	// EndedByID is the Discord user ID of the member closing the session
	EndedByID string

	// EndedByName is the display name of that member
	EndedByName string
}

// EndSessionOutput contains the completed session record
type EndSessionOutput struct {
	Session *models.Session
}

// GetCurrentStatusInput contains parameters for reading the active session
type GetCurrentStatusInput struct {
}

// GetCurrentStatusOutput contains the active session projection
type GetCurrentStatusOutput struct {
	// Session is the active session
	Session *models.Session

	// Elapsed is the live-computed time since the session started; it is
	// a projection and never persisted
	Elapsed time.Duration
}

// GetHistoryInput contains parameters for listing recent sessions
type GetHistoryInput struct {
	// Limit caps how many sessions are returned; DefaultHistoryLimit when
	// zero or negative
	Limit int
}

// GetHistoryOutput contains recent sessions, newest first
type GetHistoryOutput struct {
	// Sessions is the history sorted by start time descending
	Sessions []*models.Session

	// Total is the full history length before truncation
	Total int
}

// GetStatsInput contains parameters for aggregate statistics
type GetStatsInput struct {
}

// GetStatsOutput contains aggregate statistics over completed sessions
type GetStatsOutput struct {
	// TotalSessions is the number of completed sessions
	TotalSessions int

	// TotalMinutes is the sum of all session durations
	TotalMinutes int

	// AverageMinutes is TotalMinutes / TotalSessions
	AverageMinutes int

	// MaxPeakPlayers is the highest peak player count across sessions
	MaxPeakPlayers int

	// MostActiveHost is the host name with the most sessions. Ties go to
	// the first host to reach the top count in history order.
	MostActiveHost string

	// MostActiveHostCount is how many sessions that host ran
	MostActiveHostCount int
}
