package status

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/sfcrp/sfcrp-bot/internal/services/status Client
//go:generate mockgen -package=mocks -destination=mocks/mock_messenger.go github.com/sfcrp/sfcrp-bot/internal/services/status Messenger

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Client fetches live counters from the game server API
type Client interface {
	// GetServerStatus returns the current player and queue counts. Any
	// transport, status or decode failure is an error; callers treat the
	// counters as unknown and try again next tick.
	GetServerStatus(ctx context.Context) (*ServerStatus, error)
}

// Messenger sends and edits embeds in a channel. The handler layer
// implements it over the Discord session.
type Messenger interface {
	// SendEmbed posts an embed and returns the new message ID
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error)

	// EditEmbed replaces the embed on an existing message
	EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error
}
