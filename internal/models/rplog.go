package models

import (
	"encoding/json"
	"time"
)

// RPLogEntry is a single recorded roleplay event. Entries are append-only
// and never mutated once written.
type RPLogEntry struct {
	// ID is the sequential log number, assigned at creation
	ID int `json:"id"`

	// LoggerID is the Discord user ID of the member who logged the event
	LoggerID string `json:"logger_id"`

	// LoggerName is the display name of the logger
	LoggerName string `json:"logger_name"`

	// Location is where the RP took place, stored lowercased
	Location string `json:"location"`

	// Description is the free-text summary of what happened
	Description string `json:"description"`

	// Participants is the raw participants text as entered
	Participants string `json:"participants"`

	// ParticipantIDs holds the user IDs extracted from mentions, in order
	ParticipantIDs []string `json:"participant_ids"`

	// ParticipantNames holds resolved or fallback display names. Plain-text
	// names without a mention are appended here with no matching ID, so the
	// two slices are not required to have equal length.
	ParticipantNames []string `json:"participant_names"`

	// Timestamp is when the entry was logged
	Timestamp time.Time `json:"timestamp"`

	// GuildID is the Discord guild the entry belongs to
	GuildID string `json:"guild_id"`
}

// UnmarshalJSON decodes an entry, accepting timestamps in RFC 3339 and in
// the naive ISO 8601 form written by earlier deployments.
func (e *RPLogEntry) UnmarshalJSON(data []byte) error {
	type alias RPLogEntry
	aux := struct {
		Timestamp flexTime `json:"timestamp"`
		*alias
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	e.Timestamp = time.Time(aux.Timestamp)

	return nil
}
