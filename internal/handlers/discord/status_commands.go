package discord

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// StupCommand handles the /stup command
type StupCommand struct {
	BaseCommand
	bot *Bot
}

// NewStupCommand creates a new status rebuild command handler
func NewStupCommand(bot *Bot) *StupCommand {
	return &StupCommand{
		BaseCommand: BaseCommand{
			Name:        "stup",
			Description: "Rebuild all status embeds.",
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the stup command
func (c *StupCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	var roles []string
	if i.Member != nil {
		roles = i.Member.Roles
	}
	if !c.bot.canRebuildStatus(interactionUser(i).ID, roles) {
		return RespondWithEphemeralMessage(s, i, "You cannot use this.")
	}

	if err := c.bot.rebuildStatusDisplay(s); err != nil {
		log.Printf("Error rebuilding status embeds: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not rebuild the status embeds.")
	}

	return RespondWithEphemeralMessage(s, i, "Embeds rebuilt.")
}

// rebuildStatusDisplay purges the status channel and reposts the embed set
func (b *Bot) rebuildStatusDisplay(s *discordgo.Session) error {
	if err := b.purgeChannel(s, b.settings.StatusChannelID); err != nil {
		return err
	}

	return b.poller.Rebuild(context.Background())
}

// handleStatusRebuildText handles the !stup text command
func (b *Bot) handleStatusRebuildText(s *discordgo.Session, m *discordgo.MessageCreate) {
	var roles []string
	if m.Member != nil {
		roles = m.Member.Roles
	}
	if !b.canRebuildStatus(m.Author.ID, roles) {
		return
	}

	if err := b.rebuildStatusDisplay(s); err != nil {
		log.Printf("Error rebuilding status embeds: %v", err)
	}
}

// handleRoleToggle handles the !dqa text command. It is master-only and
// silent in every failure mode.
func (b *Bot) handleRoleToggle(s *discordgo.Session, m *discordgo.MessageCreate, roleName string) {
	if b.settings.MasterID == "" || m.Author.ID != b.settings.MasterID {
		return
	}

	if roleName == "" {
		return
	}

	guildRoles, err := s.GuildRoles(m.GuildID)
	if err != nil {
		log.Printf("Error listing guild roles: %v", err)
		return
	}

	var role *discordgo.Role
	for _, r := range guildRoles {
		if strings.EqualFold(r.Name, roleName) {
			role = r
			break
		}
	}
	if role == nil {
		return
	}

	hasRole := false
	if m.Member != nil {
		for _, id := range m.Member.Roles {
			if id == role.ID {
				hasRole = true
				break
			}
		}
	}

	if hasRole {
		err = s.GuildMemberRoleRemove(m.GuildID, m.Author.ID, role.ID)
	} else {
		err = s.GuildMemberRoleAdd(m.GuildID, m.Author.ID, role.ID)
	}
	if err != nil {
		log.Printf("Error toggling role %s: %v", role.Name, err)
	}
}
