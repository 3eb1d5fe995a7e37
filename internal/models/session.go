package models

import (
	"encoding/json"
	"time"
)

// Session represents one contiguous period the roleplay server is open,
// from start (SSU) to shutdown (SSD).
type Session struct {
	// ID is the sequential session number, assigned at creation
	ID int `json:"id"`

	// HostID is the Discord user ID of the member who started the session
	HostID string `json:"host_id"`

	// HostName is the display name of the host at start time
	HostName string `json:"host_name"`

	// StartTime is when the session was opened
	StartTime time.Time `json:"start_time"`

	// EndTime is when the session was closed; nil while the session is active
	EndTime *time.Time `json:"end_time,omitempty"`

	// CurrentPlayers is the last reported in-game player count
	CurrentPlayers int `json:"current_players"`

	// PeakPlayers is the highest reported player count for this session
	PeakPlayers int `json:"peak_players"`

	// PlayerUpdates is how many player-count reports were received
	PlayerUpdates int `json:"player_updates"`

	// PlayerHistory holds the raw sequence of reported player counts
	PlayerHistory []int `json:"player_history"`

	// VoteInitiated is true when the session was opened by a community vote
	VoteInitiated bool `json:"vote_initiated"`

	// VoterCount is the number of unique voters when vote-initiated
	VoterCount int `json:"voter_count"`

	// EndedByID is the Discord user ID of the member who closed the session
	EndedByID string `json:"ended_by_id,omitempty"`

	// EndedByName is the display name of the member who closed the session
	EndedByName string `json:"ended_by_name,omitempty"`

	// DurationMinutes is the whole-minute session length, stamped at close
	DurationMinutes int `json:"duration_minutes,omitempty"`
}

// UnmarshalJSON decodes a session, accepting timestamps in RFC 3339 and
// in the naive ISO 8601 form written by earlier deployments.
func (s *Session) UnmarshalJSON(data []byte) error {
	type alias Session
	aux := struct {
		StartTime flexTime  `json:"start_time"`
		EndTime   *flexTime `json:"end_time,omitempty"`
		*alias
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.StartTime = time.Time(aux.StartTime)
	if aux.EndTime != nil {
		end := time.Time(*aux.EndTime)
		s.EndTime = &end
	}

	return nil
}

// SessionDocument is the on-disk shape of the session store. Field names
// match the existing data file and must stay stable across save/load.
type SessionDocument struct {
	// Sessions is the append-only history of completed sessions
	Sessions []*Session `json:"sessions"`

	// CurrentSession is the single in-progress session, nil when none
	CurrentSession *Session `json:"current_session"`
}
