package rplog

import (
	"github.com/sfcrp/sfcrp-bot/internal/common/clock"
	"github.com/sfcrp/sfcrp-bot/internal/models"
	rplogRepo "github.com/sfcrp/sfcrp-bot/internal/repositories/rplog"
)

// Category selects the leaderboard aggregation dimension. The set is
// closed; anything else fails with ErrUnknownCategory.
type Category string

const (
	// CategoryLogged ranks members by how many logs they wrote
	CategoryLogged Category = "logged"

	// CategoryParticipated ranks members by how many logs mention them
	CategoryParticipated Category = "participated"

	// CategoryLocations ranks locations by how many logs happened there
	CategoryLocations Category = "locations"
)

// LeaderboardLimit caps how many subjects a leaderboard returns
const LeaderboardLimit = 10

// Config holds configuration for the RP log service
type Config struct {
	// Repo is the RP log store
	Repo rplogRepo.Repository

	// Resolver turns member IDs into display names
	Resolver MemberResolver

	// Clock supplies timestamps; defaults to the system clock
	Clock clock.Clock
}

// CreateEntryInput contains parameters for logging a roleplay event
type CreateEntryInput struct {
	// LoggerID is the Discord user ID of the author
	LoggerID string

	// LoggerName is the author's display name
	LoggerName string

	// Location is where the RP took place; stored lowercased
	Location string

	// Description is the free-text summary
	Description string

	// Participants is the raw participants text, mentions or plain names
	Participants string

	// GuildID is the guild the log belongs to
	GuildID string
}

// CreateEntryOutput contains the created entry. The entry is returned as
// owned by the register; callers must not mutate it.
type CreateEntryOutput struct {
	Entry *models.RPLogEntry
}

// GetEntryInput contains parameters for looking up a log
type GetEntryInput struct {
	// ID is the log number
	ID int

	// GuildID scopes the lookup; IDs are process-global, so the guild
	// filter disambiguates cross-guild reuse
	GuildID string
}

// GetEntryOutput contains the retrieved entry
type GetEntryOutput struct {
	Entry *models.RPLogEntry
}

// GetLeaderboardInput contains parameters for ranking a guild's logs
type GetLeaderboardInput struct {
	// GuildID scopes the ranking
	GuildID string

	// Category is the aggregation dimension; empty defaults to
	// CategoryLogged
	Category Category
}

// LeaderboardEntry is one ranked subject
type LeaderboardEntry struct {
	// SubjectID is the member ID, or the normalized location
	SubjectID string

	// SubjectName is the resolved display name, or the title-cased
	// location
	SubjectName string

	// Count is how many logs the subject appears in
	Count int
}

// GetLeaderboardOutput contains the ranked subjects
type GetLeaderboardOutput struct {
	// Category echoes the dimension that was ranked
	Category Category

	// Entries is sorted by count descending, ties by first appearance
	Entries []LeaderboardEntry

	// TotalLogs is the guild's total log count
	TotalLogs int
}
