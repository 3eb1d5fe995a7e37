package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sfcrp/sfcrp-bot/internal/models"
	"github.com/sfcrp/sfcrp-bot/internal/services/session"
)

// SSVCommand handles the /ssv command
type SSVCommand struct {
	BaseCommand
	bot *Bot
}

// NewSSVCommand creates a new session vote command handler
func NewSSVCommand(bot *Bot) *SSVCommand {
	return &SSVCommand{
		BaseCommand: BaseCommand{
			Name:        "ssv",
			Description: "Start session vote (SSV)",
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the ssv command
func (c *SSVCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	ctx := context.Background()

	// Refuse to open a vote while a session is running
	_, err := c.bot.sessionService.GetCurrentStatus(ctx, &session.GetCurrentStatusInput{})
	if err == nil {
		return RespondWithEphemeralMessage(s, i, "⚠️ A session is already active! Use `/ssd` to end it first.")
	}
	if !errors.Is(err, session.ErrNoActiveSession) {
		log.Printf("Error checking current session: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not check the current session. Please try again later.")
	}

	vote, err := session.NewVote(&session.VoteConfig{
		Goal:          c.bot.settings.VoteGoal,
		Service:       c.bot.sessionService,
		UUIDGenerator: c.bot.uuidGen,
	})
	if err != nil {
		log.Printf("Error creating vote: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not start the vote. Please try again later.")
	}

	startedBy := interactionUser(i).Mention()

	msg, err := s.ChannelMessageSendComplex(c.bot.settings.AnnounceChannelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@&%s>", c.bot.settings.SessionPingRoleID),
		Embeds:     []*discordgo.MessageEmbed{c.bot.buildVoteEmbed(startedBy, 0, vote.Goal(), nil)},
		Components: c.bot.buildVoteComponents(vote.ID(), 0, false),
	})
	if err != nil {
		log.Printf("Error sending vote message: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Announcement channel not found.")
	}

	c.bot.votes.add(&voteView{
		vote:      vote,
		channelID: c.bot.settings.AnnounceChannelID,
		messageID: msg.ID,
		startedBy: startedBy,
	})

	return RespondWithEphemeralMessage(s, i, "🟡 Session vote started! Players can now vote.")
}

// SSUCommand handles the /ssu command
type SSUCommand struct {
	BaseCommand
	bot *Bot
}

// NewSSUCommand creates a new session start command handler
func NewSSUCommand(bot *Bot) *SSUCommand {
	return &SSUCommand{
		BaseCommand: BaseCommand{
			Name:        "ssu",
			Description: "Start Session (SSU)",
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the ssu command
func (c *SSUCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	ctx := context.Background()

	out, err := c.bot.sessionService.StartSession(ctx, &session.StartSessionInput{
		HostID:   interactionUser(i).ID,
		HostName: interactionDisplayName(i),
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionActive) {
			return RespondWithEphemeralMessage(s, i, "⚠️ A session is already active! Use `/ssd` to end it first.")
		}
		log.Printf("Error starting session: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not start the session. Please try again later.")
	}

	if err := c.bot.announceSessionStart(s, out.Session, interactionUser(i).Mention()); err != nil {
		log.Printf("Error announcing session start: %v", err)
		return RespondWithEphemeralMessage(s, i, "🟢 Session started, but I could not post the announcement.")
	}

	return RespondWithEphemeralMessage(s, i, "🟢 Session started successfully!")
}

// SSDCommand handles the /ssd command
type SSDCommand struct {
	BaseCommand
	bot *Bot
}

// NewSSDCommand creates a new session end command handler
func NewSSDCommand(bot *Bot) *SSDCommand {
	return &SSDCommand{
		BaseCommand: BaseCommand{
			Name:        "ssd",
			Description: "End Session (SSD)",
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the ssd command
func (c *SSDCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	ctx := context.Background()

	out, err := c.bot.sessionService.EndSession(ctx, &session.EndSessionInput{
		EndedByID:   interactionUser(i).ID,
		EndedByName: interactionDisplayName(i),
	})
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			return RespondWithEphemeralMessage(s, i, "⚠️ No active session to end!")
		}
		log.Printf("Error ending session: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not end the session. Please try again later.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🔴 Server Shutdown — Session Ended",
		Description: "The server session has now ended.\nThank you for participating!",
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎮 Started by", Value: out.Session.HostName, Inline: true},
			{Name: "🛑 Ended by", Value: interactionUser(i).Mention(), Inline: true},
		},
		Image:  &discordgo.MessageEmbedImage{URL: c.bot.settings.SessionBannerURL},
		Footer: &discordgo.MessageEmbedFooter{Text: "Server Status: SSD — Thanks for playing!"},
	}

	if _, err := s.ChannelMessageSendEmbed(c.bot.settings.AnnounceChannelID, embed); err != nil {
		log.Printf("Error sending shutdown announcement: %v", err)
		return RespondWithEphemeralMessage(s, i, "🔴 Session ended and logged, but I could not post the announcement.")
	}

	return RespondWithEphemeralMessage(s, i, "🔴 Session ended and logged!")
}

// SessionStatusCommand handles the /sessionstatus command
type SessionStatusCommand struct {
	BaseCommand
	bot *Bot
}

// NewSessionStatusCommand creates a new session status command handler
func NewSessionStatusCommand(bot *Bot) *SessionStatusCommand {
	return &SessionStatusCommand{
		BaseCommand: BaseCommand{
			Name:        "sessionstatus",
			Description: "View current session information",
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the sessionstatus command
func (c *SessionStatusCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	out, err := c.bot.sessionService.GetCurrentStatus(ctx, &session.GetCurrentStatusInput{})
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			return RespondWithEphemeralMessage(s, i, "⚠️ No active session running!")
		}
		log.Printf("Error reading session status: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not read the session status. Please try again later.")
	}

	hours := int(out.Elapsed.Hours())
	minutes := int(out.Elapsed.Minutes()) % 60

	embed := &discordgo.MessageEmbed{
		Title:       "📊 Current Session Status",
		Description: "Active session information:",
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎮 Host", Value: out.Session.HostName, Inline: true},
			{Name: "👥 Current Players", Value: fmt.Sprintf("**%d**", out.Session.CurrentPlayers), Inline: true},
			{Name: "📈 Peak Players", Value: fmt.Sprintf("**%d**", out.Session.PeakPlayers), Inline: true},
			{Name: "⏱️ Duration", Value: fmt.Sprintf("%dh %dm", hours, minutes), Inline: true},
			{Name: "📅 Started", Value: fmt.Sprintf("<t:%d:R>", out.Session.StartTime.Unix()), Inline: true},
			{Name: "📊 Updates", Value: fmt.Sprintf("%d", out.Session.PlayerUpdates), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Session is currently active"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if out.Session.VoteInitiated {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🗳️ Started By", Value: "Community Vote", Inline: true,
		})
	}

	return RespondWithEmbed(s, i, embed)
}

// SessionHistoryCommand handles the /sessionhistory command
type SessionHistoryCommand struct {
	BaseCommand
	bot *Bot
}

// NewSessionHistoryCommand creates a new session history command handler
func NewSessionHistoryCommand(bot *Bot) *SessionHistoryCommand {
	return &SessionHistoryCommand{
		BaseCommand: BaseCommand{
			Name:        "sessionhistory",
			Description: "View recent session history",
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the sessionhistory command
func (c *SessionHistoryCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	out, err := c.bot.sessionService.GetHistory(ctx, &session.GetHistoryInput{
		Limit: session.DefaultHistoryLimit,
	})
	if err != nil {
		if errors.Is(err, session.ErrNoSessions) {
			return RespondWithEphemeralMessage(s, i, "📊 No session history yet!")
		}
		log.Printf("Error reading session history: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not read the session history. Please try again later.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Recent Session History",
		Description: fmt.Sprintf("Showing last %d sessions:", len(out.Sessions)),
		Color:       colorBlue,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total sessions: %d", out.Total)},
	}

	for _, sess := range out.Sessions {
		info := fmt.Sprintf(
			"**Host:** %s\n**Duration:** %s\n**Peak Players:** %d\n**Date:** %s",
			sess.HostName,
			formatHoursMinutes(sess.DurationMinutes),
			sess.PeakPlayers,
			sess.StartTime.Format("Jan 02, 2006 at 3:04 PM"),
		)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Session #%d", sess.ID),
			Value: info,
		})
	}

	return RespondWithEmbed(s, i, embed)
}

// SessionStatsCommand handles the /sessionstats command
type SessionStatsCommand struct {
	BaseCommand
	bot *Bot
}

// NewSessionStatsCommand creates a new session statistics command handler
func NewSessionStatsCommand(bot *Bot) *SessionStatsCommand {
	return &SessionStatsCommand{
		BaseCommand: BaseCommand{
			Name:        "sessionstats",
			Description: "View overall session statistics",
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the sessionstats command
func (c *SessionStatsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	out, err := c.bot.sessionService.GetStats(ctx, &session.GetStatsInput{})
	if err != nil {
		if errors.Is(err, session.ErrNoSessions) {
			return RespondWithEphemeralMessage(s, i, "📊 No session data yet!")
		}
		log.Printf("Error reading session stats: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not read the session statistics. Please try again later.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 Session Statistics",
		Description: "All-time server statistics:",
		Color:       colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📈 Total Sessions", Value: fmt.Sprintf("**%d**", out.TotalSessions), Inline: true},
			{Name: "⏱️ Total Playtime", Value: fmt.Sprintf("**%s**", formatHoursMinutes(out.TotalMinutes)), Inline: true},
			{Name: "🏆 Most Active Host", Value: fmt.Sprintf("**%s**\n(%d sessions)", out.MostActiveHost, out.MostActiveHostCount), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Statistics since bot deployment"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return RespondWithEmbed(s, i, embed)
}

// announceSessionStart posts the session open embed with the role ping
func (b *Bot) announceSessionStart(s *discordgo.Session, sess *models.Session, hostMention string) error {
	embed := &discordgo.MessageEmbed{
		Title:       "🟢 Server Start Up — Session Open",
		Description: "The server is now **open for RP**! Join in and have fun!",
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎮 Started by", Value: hostMention, Inline: true},
		},
		Image:     &discordgo.MessageEmbedImage{URL: b.settings.SessionBannerURL},
		Timestamp: sess.StartTime.Format(time.RFC3339),
	}

	if sess.VoteInitiated {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🗳️ Vote Count", Value: fmt.Sprintf("%d votes", sess.VoterCount), Inline: true,
		})
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Server Status: SSU — Started by community vote!"}
	} else {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Server Status: SSU — Join now!"}
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Server Code", Value: b.settings.ServerCode,
	})

	_, err := s.ChannelMessageSendComplex(b.settings.AnnounceChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@&%s>", b.settings.SessionPingRoleID),
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	return err
}

// buildVoteEmbed renders the standby vote message for the given tally
func (b *Bot) buildVoteEmbed(startedBy string, count, goal int, voterNames []string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🟡 Server Standby — Vote for Session Start",
		Description: fmt.Sprintf(
			"Server currently in **standby**.\nPlayers can vote ✅ to start the session.\n\n**Vote Goal:** %d votes\n**Current Votes:** %d",
			goal, count,
		),
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎮 Started by", Value: startedBy, Inline: true},
		},
		Image:  &discordgo.MessageEmbedImage{URL: b.settings.SessionBannerURL},
		Footer: &discordgo.MessageEmbedFooter{Text: "Server Status: SSV — Waiting for player votes"},
	}

	if len(voterNames) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "👥 Voters",
			Value: voterList(voterNames),
		})
	}

	return embed
}

// buildVoteComponents renders the vote buttons with a live count label
func (b *Bot) buildVoteComponents(voteID string, count int, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    fmt.Sprintf("✅ Vote to Start (%d)", count),
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("%s:%s", ComponentVoteCast, voteID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "❌ Remove Vote",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("%s:%s", ComponentVoteRetract, voteID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "📊 View Voters",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:%s", ComponentVoteVoters, voteID),
					Disabled: disabled,
				},
			},
		},
	}
}

// refreshVoteMessage edits the vote message to reflect the current tally
func (b *Bot) refreshVoteMessage(s *discordgo.Session, view *voteView, closed bool) {
	embed := b.buildVoteEmbed(view.startedBy, view.vote.Tally(), view.vote.Goal(), view.vote.VoterNames())
	components := b.buildVoteComponents(view.vote.ID(), view.vote.Tally(), closed)

	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    view.channelID,
		ID:         view.messageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Printf("Error updating vote message: %v", err)
	}
}

// handleVoteCast handles the vote button click
func (b *Bot) handleVoteCast(s *discordgo.Session, i *discordgo.InteractionCreate, voteID string) error {
	view, ok := b.votes.get(voteID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "⚠️ This vote is no longer active.")
	}

	ctx := context.Background()

	out, err := view.vote.Cast(ctx, interactionUser(i).ID, interactionDisplayName(i))
	if err != nil {
		switch {
		case errors.Is(err, session.ErrAlreadyVoted):
			return RespondWithEphemeralMessage(s, i, "⚠️ You've already voted!")
		case errors.Is(err, session.ErrVoteClosed):
			return RespondWithEphemeralMessage(s, i, "⚠️ This vote has already finished.")
		case errors.Is(err, session.ErrSessionActive):
			// The goal-reaching cast closed the vote but found a session
			// already running; retire the view so the buttons freeze
			b.refreshVoteMessage(s, view, true)
			b.votes.remove(voteID)
			return RespondWithEphemeralMessage(s, i, "⚠️ A session is already active!")
		default:
			log.Printf("Error casting vote: %v", err)
			return RespondWithEphemeralMessage(s, i, "❌ Could not count your vote. Please try again later.")
		}
	}

	if !out.GoalReached {
		b.refreshVoteMessage(s, view, false)
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("✅ Your vote has been counted! (%d/%d)", out.Count, view.vote.Goal()))
	}

	// Goal reached: freeze the vote message and open the session
	b.refreshVoteMessage(s, view, true)
	b.votes.remove(voteID)

	if err := b.announceSessionStart(s, out.Session, interactionUser(i).Mention()); err != nil {
		log.Printf("Error announcing vote-started session: %v", err)
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("🎉 Vote goal reached (%d/%d)! Starting session...", out.Count, view.vote.Goal()))
}

// handleVoteRetract handles the remove vote button click
func (b *Bot) handleVoteRetract(s *discordgo.Session, i *discordgo.InteractionCreate, voteID string) error {
	view, ok := b.votes.get(voteID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "⚠️ This vote is no longer active.")
	}

	ctx := context.Background()

	_, err := view.vote.Retract(ctx, interactionUser(i).ID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotVoted):
			return RespondWithEphemeralMessage(s, i, "⚠️ You haven't voted yet!")
		case errors.Is(err, session.ErrVoteClosed):
			return RespondWithEphemeralMessage(s, i, "⚠️ This vote has already finished.")
		default:
			log.Printf("Error retracting vote: %v", err)
			return RespondWithEphemeralMessage(s, i, "❌ Could not remove your vote. Please try again later.")
		}
	}

	b.refreshVoteMessage(s, view, false)
	return RespondWithEphemeralMessage(s, i, "❌ Vote removed.")
}

// handleVoteVoters handles the view voters button click
func (b *Bot) handleVoteVoters(s *discordgo.Session, i *discordgo.InteractionCreate, voteID string) error {
	view, ok := b.votes.get(voteID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "⚠️ This vote is no longer active.")
	}

	names := view.vote.VoterNames()
	if len(names) == 0 {
		return RespondWithEphemeralMessage(s, i, "📊 No votes yet!")
	}

	var list string
	for _, name := range names {
		list += fmt.Sprintf("• **%s**\n", name)
	}

	return RespondWithEphemeralEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📊 Current Voters (%d/%d)", len(names), view.vote.Goal()),
		Description: list,
		Color:       colorBlue,
	})
}
