package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sfcrp/sfcrp-bot/internal/services/rplog"
)

// LogRPCommand handles the /logrp command
type LogRPCommand struct {
	BaseCommand
	bot *Bot
}

// NewLogRPCommand creates a new roleplay logging command handler
func NewLogRPCommand(bot *Bot) *LogRPCommand {
	return &LogRPCommand{
		BaseCommand: BaseCommand{
			Name:        "logrp",
			Description: "Log a roleplay event",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "location",
					Description: "Where did the RP take place?",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "description",
					Description: "Brief description of what happened.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "participants",
					Description: "Who was involved in the RP?",
					Required:    true,
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the logrp command
func (c *LogRPCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i.ApplicationCommandData().Options)
	location := opts["location"].StringValue()
	description := opts["description"].StringValue()
	participants := opts["participants"].StringValue()

	ctx := context.Background()

	out, err := c.bot.rplogService.CreateEntry(ctx, &rplog.CreateEntryInput{
		LoggerID:     interactionUser(i).ID,
		LoggerName:   interactionDisplayName(i),
		Location:     location,
		Description:  description,
		Participants: participants,
		GuildID:      i.GuildID,
	})
	if err != nil {
		log.Printf("Error creating RP log: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not save the roleplay log. Please try again later.")
	}

	embed := &discordgo.MessageEmbed{
		Title: "📘 Roleplay Log",
		Color: colorDarkBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📍 Location", Value: location, Inline: true},
			{Name: "📝 Roleplay", Value: description},
			{Name: "👥 Participants", Value: participants},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("Logged by %s", interactionDisplayName(i)),
			IconURL: interactionUser(i).AvatarURL(""),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if url := c.bot.settings.RoleplayBannerURL; url != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: url}
	}

	if _, err := s.ChannelMessageSendEmbed(c.bot.settings.RPLogsChannelID, embed); err != nil {
		log.Printf("Error posting RP log: %v", err)
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("✅ Roleplay log #%d saved, but I could not post it. Please contact an admin.", out.Entry.ID))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("✅ Roleplay log #%d posted successfully!", out.Entry.ID))
}

// RPLogCommand handles the /rplog command
type RPLogCommand struct {
	BaseCommand
	bot *Bot
}

// NewRPLogCommand creates a new log lookup command handler
func NewRPLogCommand(bot *Bot) *RPLogCommand {
	return &RPLogCommand{
		BaseCommand: BaseCommand{
			Name:        "rplog",
			Description: "View a specific RP log by ID",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "log_id",
					Description: "The ID number of the RP log",
					Required:    true,
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the rplog command
func (c *RPLogCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i.ApplicationCommandData().Options)
	logID := int(opts["log_id"].IntValue())

	ctx := context.Background()

	out, err := c.bot.rplogService.GetEntry(ctx, &rplog.GetEntryInput{
		ID:      logID,
		GuildID: i.GuildID,
	})
	if err != nil {
		if errors.Is(err, rplog.ErrLogNotFound) {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("❌ RP log #%d not found!", logID))
		}
		log.Printf("Error reading RP log: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not read the roleplay log. Please try again later.")
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📘 RP Log #%d", out.Entry.ID),
		Color: colorDarkBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📍 Location", Value: titleCase(out.Entry.Location), Inline: true},
			{Name: "👤 Logged By", Value: out.Entry.LoggerName, Inline: true},
			{Name: "📝 Description", Value: out.Entry.Description},
			{Name: "👥 Participants", Value: out.Entry.Participants},
		},
	}

	return RespondWithEmbed(s, i, embed)
}

// RPLeaderboardCommand handles the /rpleaderboard command
type RPLeaderboardCommand struct {
	BaseCommand
	bot *Bot
}

// NewRPLeaderboardCommand creates a new leaderboard command handler
func NewRPLeaderboardCommand(bot *Bot) *RPLeaderboardCommand {
	return &RPLeaderboardCommand{
		BaseCommand: BaseCommand{
			Name:        "rpleaderboard",
			Description: "View top RP contributors",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "What to rank by",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Most RPs Logged", Value: string(rplog.CategoryLogged)},
						{Name: "Most RPs Participated", Value: string(rplog.CategoryParticipated)},
						{Name: "Most Active Locations", Value: string(rplog.CategoryLocations)},
					},
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the rpleaderboard command
func (c *RPLeaderboardCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i.ApplicationCommandData().Options)
	category := rplog.Category(stringOption(opts, "category", string(rplog.CategoryLogged)))

	ctx := context.Background()

	out, err := c.bot.rplogService.GetLeaderboard(ctx, &rplog.GetLeaderboardInput{
		GuildID:  i.GuildID,
		Category: category,
	})
	if err != nil {
		switch {
		case errors.Is(err, rplog.ErrNoLogs):
			return RespondWithEphemeralMessage(s, i, "📊 No RP logs found yet! Start logging with `/logrp`")
		case errors.Is(err, rplog.ErrUnknownCategory):
			return RespondWithEphemeralMessage(s, i, "❌ Unknown leaderboard category.")
		default:
			log.Printf("Error building RP leaderboard: %v", err)
			return RespondWithEphemeralMessage(s, i, "❌ Could not build the leaderboard. Please try again later.")
		}
	}

	var description, fieldName string
	switch out.Category {
	case rplog.CategoryLogged:
		description = "Top users who have logged the most RPs"
		fieldName = "📝 Most RPs Logged"
	case rplog.CategoryParticipated:
		description = "Top users who have participated in the most RPs"
		fieldName = "👥 Most Active RPers"
	case rplog.CategoryLocations:
		description = "Most popular RP locations"
		fieldName = "📍 Top Locations"
	}

	var rows string
	for idx, entry := range out.Entries {
		medal := rankMedal(idx + 1)
		if out.Category == rplog.CategoryLocations {
			rows += fmt.Sprintf("%s **%s** - **%d** RPs\n", medal, entry.SubjectName, entry.Count)
		} else {
			rows += fmt.Sprintf("%s <@%s> - **%d** RPs\n", medal, entry.SubjectID, entry.Count)
		}
	}
	if rows == "" {
		rows = "No data"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 RP Leaderboard",
		Description: description,
		Color:       colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fieldName, Value: rows},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total RPs in server: %d", out.TotalLogs)},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return RespondWithEmbed(s, i, embed)
}
