package rplog

//go:generate mockgen -package=mocks -destination=mocks/mock_resolver.go github.com/sfcrp/sfcrp-bot/internal/services/rplog MemberResolver

import "context"

// Service defines the interface for RP log operations
type Service interface {
	// CreateEntry records a new roleplay log
	CreateEntry(ctx context.Context, input *CreateEntryInput) (*CreateEntryOutput, error)

	// GetEntry retrieves one log by ID within a guild
	GetEntry(ctx context.Context, input *GetEntryInput) (*GetEntryOutput, error)

	// GetLeaderboard ranks loggers, participants or locations for a guild
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}

// MemberResolver resolves a guild member's display name. The handler layer
// implements it over the Discord API.
type MemberResolver interface {
	ResolveMember(ctx context.Context, guildID, userID string) (string, error)
}
