package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/sfcrp/sfcrp-bot/internal/services/session Service

import "context"

// Service defines the interface for session lifecycle operations
type Service interface {
	// StartSession opens a new session; fails if one is already active
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// EndSession closes the active session and appends it to history
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// GetCurrentStatus returns the active session with its live duration
	GetCurrentStatus(ctx context.Context, input *GetCurrentStatusInput) (*GetCurrentStatusOutput, error)

	// GetHistory returns the most recent completed sessions
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// GetStats returns aggregate statistics over all completed sessions
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)
}
