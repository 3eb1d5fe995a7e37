package discord

import (
	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// RespondWithMessage sends a simple text message response to an interaction
func RespondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondWithEmbed sends an embed response to an interaction
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// RespondWithEphemeralEmbed sends an ephemeral embed response to an interaction
func RespondWithEphemeralEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// optionMap indexes interaction options by name
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// stringOption returns a string option value or the fallback when absent
func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name, fallback string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return fallback
}

// interactionUser returns the invoking user for guild and DM interactions
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// interactionDisplayName returns the invoker's nickname, falling back to
// their username
func interactionDisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	return interactionUser(i).Username
}
