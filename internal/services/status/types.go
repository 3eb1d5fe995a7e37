package status

import (
	"time"

	"github.com/sfcrp/sfcrp-bot/internal/common/clock"
)

// DefaultInterval is how often the live status embed is refreshed
const DefaultInterval = 30 * time.Second

// fetchTimeout bounds each tick's API call so a stalled fetch can never
// block the loop past its own tick
const fetchTimeout = 10 * time.Second

// embedCount is the fixed number of messages in the status display:
// banner, session info, server info, live status
const embedCount = 4

// liveEmbedIndex is the position of the live status message, the only one
// edited by ticks
const liveEmbedIndex = 3

// ServerStatus holds the live counters reported by the game server API
type ServerStatus struct {
	// PlayerCount is the number of players in the server
	PlayerCount int `json:"playerCount"`

	// QueueLength is the number of players waiting to join
	QueueLength int `json:"queueLength"`
}

// Config holds configuration for the status poller
type Config struct {
	// Client fetches live counters
	Client Client

	// Messenger sends and edits the status embeds
	Messenger Messenger

	// Clock supplies timestamps; defaults to the system clock
	Clock clock.Clock

	// ChannelID is where the status embeds live
	ChannelID string

	// Interval between refresh ticks; DefaultInterval when zero
	Interval time.Duration

	// Game server identity shown in the embeds
	ServerName  string
	ServerOwner string
	ServerCode  string

	// BannerURL is the image for the banner embed
	BannerURL string

	// HostRoleID is mentioned in the session info embed
	HostRoleID string
}
