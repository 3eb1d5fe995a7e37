package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sfcrp/sfcrp-bot/internal/services/rplog"
	"github.com/sfcrp/sfcrp-bot/internal/services/status"
)

// guildMemberResolver resolves member display names through the Discord
// session. It backs the RP log service's participant and leaderboard
// name lookups.
type guildMemberResolver struct {
	session *discordgo.Session
}

// NewMemberResolver creates a resolver backed by the Discord session
func NewMemberResolver(session *discordgo.Session) rplog.MemberResolver {
	return &guildMemberResolver{session: session}
}

func (r *guildMemberResolver) ResolveMember(_ context.Context, guildID, userID string) (string, error) {
	member, err := r.session.GuildMember(guildID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}

	if member.Nick != "" {
		return member.Nick, nil
	}
	return member.User.Username, nil
}

// channelMessenger sends and edits embeds through the Discord session on
// behalf of the status poller.
type channelMessenger struct {
	session *discordgo.Session
}

// NewChannelMessenger creates a messenger backed by the Discord session
func NewChannelMessenger(session *discordgo.Session) status.Messenger {
	return &channelMessenger{session: session}
}

func (m *channelMessenger) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	msg, err := m.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", fmt.Errorf("failed to send embed: %w", err)
	}
	return msg.ID, nil
}

func (m *channelMessenger) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := m.session.ChannelMessageEditEmbed(channelID, messageID, embed)
	if err != nil {
		return fmt.Errorf("failed to edit embed: %w", err)
	}
	return nil
}
