package discord

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PromoteCommand handles the /promote command
type PromoteCommand struct {
	BaseCommand
	bot *Bot
}

// NewPromoteCommand creates a new promote command handler
func NewPromoteCommand(bot *Bot) *PromoteCommand {
	return &PromoteCommand{
		BaseCommand: BaseCommand{
			Name:        "promote",
			Description: "Promote a member with notes",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "Member to promote",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "new_rank",
					Description: "New rank/title for the member",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for promotion (optional)",
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the promote command
func (c *PromoteCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	member := opts["member"].UserValue(s)
	newRank := opts["new_rank"].StringValue()
	reason := stringOption(opts, "reason", "N/A")

	bannerEmbed := &discordgo.MessageEmbed{
		Color: colorBlue,
		Image: &discordgo.MessageEmbedImage{URL: c.bot.settings.PromotionBannerURL},
	}

	promoEmbed := &discordgo.MessageEmbed{
		Title: "📈 Staff Promotion",
		Description: fmt.Sprintf(
			"**%s** has been promoted to **%s**!\n\n"+
				"Your commitment and hard work have earned you this role — congratulations!\n\n"+
				"----------------------------\n"+
				"**👤 Member:** %s\n"+
				"**🏅 New Rank:** %s\n"+
				"🧾 **Reason:** %s\n",
			member.Mention(), newRank, member.Mention(), newRank, reason,
		),
		Color: colorBlue,
	}

	dmEmbed := &discordgo.MessageEmbed{
		Title: "🎉 You've been promoted!",
		Description: fmt.Sprintf(
			"Congratulations %s!\n\nYou've been promoted to **%s**.\nReason: %s\n\nKeep up the great work!",
			member.Mention(), newRank, reason,
		),
		Color: colorGreen,
	}
	dmSent := sendDMSafe(s, member.ID, "", dmEmbed)

	channelID := c.bot.settings.PromotionsChannelID
	if _, err := s.ChannelMessageSendEmbed(channelID, bannerEmbed); err != nil {
		log.Printf("Error posting promotion banner: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Promotion channel not found. Check the channel ID.")
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, promoEmbed); err != nil {
		log.Printf("Error posting promotion: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not post the promotion. Please try again later.")
	}

	if dmSent {
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("✅ Promotion for %s logged in <#%s> and DM sent.", member.Mention(), channelID))
	}
	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("✅ Promotion posted in <#%s>, but I couldn't DM %s.", channelID, member.Mention()))
}

// InfractionCommand handles the /infraction command
type InfractionCommand struct {
	BaseCommand
	bot *Bot
}

// NewInfractionCommand creates a new infraction command handler
func NewInfractionCommand(bot *Bot) *InfractionCommand {
	punishments := []string{
		"Warning", "Strike", "Under Investigation", "Suspension",
		"Demotion", "Termination", "Staff Blacklist",
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(punishments))
	for _, p := range punishments {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: p, Value: p})
	}

	return &InfractionCommand{
		BaseCommand: BaseCommand{
			Name:        "infraction",
			Description: "Give a user an infraction",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "Member to infract",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for infraction",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "punishment",
					Description: "Type of punishment",
					Required:    true,
					Choices:     choices,
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the infraction command
func (c *InfractionCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	member := opts["member"].UserValue(s)
	reason := opts["reason"].StringValue()
	punishment := opts["punishment"].StringValue()

	bannerEmbed := &discordgo.MessageEmbed{
		Color: colorBlue,
		Image: &discordgo.MessageEmbedImage{URL: c.bot.settings.InfractionBannerURL},
	}

	infractionEmbed := &discordgo.MessageEmbed{
		Title: "⚠️ Infraction Issued",
		Description: "Your account has received an infraction for the following reason(s). " +
			"If you believe this was a mistake or would like to appeal, please submit an appeal.",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 User", Value: member.Mention(), Inline: true},
			{Name: "📋 Reason", Value: reason, Inline: true},
			{Name: "⚖️ Punishment", Value: punishment, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("Issued by %s", interactionDisplayName(i)),
			IconURL: interactionUser(i).AvatarURL(""),
		},
	}

	guildName := "this server"
	if guild, err := s.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}
	dmMessage := fmt.Sprintf(
		"You have received an infraction in **%s**.\n**Reason:** %s\n**Punishment:** %s",
		guildName, reason, punishment,
	)
	dmSent := sendDMSafe(s, member.ID, dmMessage, nil)

	channelID := c.bot.settings.InfractionsChannelID
	if _, err := s.ChannelMessageSendEmbed(channelID, bannerEmbed); err != nil {
		log.Printf("Error posting infraction banner: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not find the infractions log channel. Please check the channel ID.")
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, infractionEmbed); err != nil {
		log.Printf("Error posting infraction: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not post the infraction. Please try again later.")
	}

	if dmSent {
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("✅ Infraction for %s has been logged in <#%s> and DM sent.", member.Mention(), channelID))
	}
	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("✅ Infraction logged in <#%s>, but I couldn't DM %s.", channelID, member.Mention()))
}

// SayCommand handles the /say command
type SayCommand struct {
	BaseCommand
	bot *Bot
}

// NewSayCommand creates a new say command handler
func NewSayCommand(bot *Bot) *SayCommand {
	return &SayCommand{
		BaseCommand: BaseCommand{
			Name:        "say",
			Description: "Make the bot say a message (staff only).",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "What should the bot say?",
					Required:    true,
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the say command
func (c *SayCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	message := opts["message"].StringValue()

	if _, err := s.ChannelMessageSend(i.ChannelID, message); err != nil {
		log.Printf("Error sending say message: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not send the message.")
	}

	return RespondWithEphemeralMessage(s, i, "✅ Message sent!")
}

// StaffTrainingCommand handles the /stafftraining command
type StaffTrainingCommand struct {
	BaseCommand
	bot *Bot
}

// NewStaffTrainingCommand creates a new staff training command handler
func NewStaffTrainingCommand(bot *Bot) *StaffTrainingCommand {
	return &StaffTrainingCommand{
		BaseCommand: BaseCommand{
			Name:        "stafftraining",
			Description: "Create a staff training or ride-along announcement.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "session_type",
					Description: "Choose between Training or Ride Along",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Training", Value: "Training"},
						{Name: "Ride Along", Value: "Ride Along"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "notes",
					Description: "Add any important notes or instructions",
					Required:    true,
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the stafftraining command
func (c *StaffTrainingCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	sessionType := opts["session_type"].StringValue()
	notes := opts["notes"].StringValue()

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🚔 Staff %s Announcement", sessionType),
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👮 **Host**", Value: interactionUser(i).Mention()},
			{Name: "📝 **Type**", Value: sessionType, Inline: true},
			{Name: "🧾 **Notes**", Value: notes},
			{Name: "🔗 Server code", Value: c.bot.settings.ServerCode},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Staff %s Announcement", sessionType)},
	}

	viewID := c.bot.uuidGen.NewUUID()
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Join",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("%s:%s", ComponentTrainingJoin, viewID),
				},
				discordgo.Button{
					Label:    "Attendees",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:%s", ComponentTrainingAttendees, viewID),
				},
			},
		},
	}

	channelID := c.bot.settings.TrainingChannelID
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@&%s>", c.bot.settings.TrainingPingRoleID),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		log.Printf("Error sending training announcement: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Could not find the target channel.")
	}

	c.bot.trainings.add(viewID)

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("✅ Sent your %s announcement to <#%s>!", strings.ToLower(sessionType), channelID))
}

// handleTrainingJoin handles the join button on a training announcement
func (b *Bot) handleTrainingJoin(s *discordgo.Session, i *discordgo.InteractionCreate, viewID string) error {
	if !b.trainings.join(viewID, interactionUser(i).Mention()) {
		return RespondWithEphemeralMessage(s, i, "⚠️ This announcement is no longer active.")
	}

	return RespondWithEphemeralMessage(s, i, "✅ You joined the training!")
}

// handleTrainingAttendees handles the attendees button on a training announcement
func (b *Bot) handleTrainingAttendees(s *discordgo.Session, i *discordgo.InteractionCreate, viewID string) error {
	attendees, ok := b.trainings.attendees(viewID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "⚠️ This announcement is no longer active.")
	}

	if len(attendees) == 0 {
		return RespondWithEphemeralMessage(s, i, "👋 No attendees yet!")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("👋 Attendees: %s", strings.Join(attendees, ", ")))
}

// TrainingResultCommand handles the /trainingresult command
type TrainingResultCommand struct {
	BaseCommand
	bot *Bot
}

// NewTrainingResultCommand creates a new training result command handler
func NewTrainingResultCommand(bot *Bot) *TrainingResultCommand {
	return &TrainingResultCommand{
		BaseCommand: BaseCommand{
			Name:        "trainingresult",
			Description: "Post a trainee's pass/fail results and DM them automatically",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "trainee",
					Description: "The trainee being evaluated",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "result",
					Description: "Did they pass or fail?",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "✅ Pass", Value: "pass"},
						{Name: "❌ Fail", Value: "fail"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "notes",
					Description: "Any training notes or feedback",
					Required:    true,
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the trainingresult command
func (c *TrainingResultCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	trainee := opts["trainee"].UserValue(s)
	result := opts["result"].StringValue()
	notes := opts["notes"].StringValue()

	var color int
	var resultText, dmMessage string
	if result == "pass" {
		color = colorGreen
		resultText = "✅ **Passed**"
		dmMessage = fmt.Sprintf(
			"🎉 Congratulations %s!\n\nYou have **passed** your training session.\n\n**Notes:** %s\n\n",
			trainee.Mention(), notes,
		)
	} else {
		color = colorRed
		resultText = "❌ **Failed**"
		dmMessage = fmt.Sprintf(
			"⚠️ Hello %s,\n\nUnfortunately, you did **not pass** your training this time.\n\n**Notes:** %s\n\n",
			trainee.Mention(), notes,
		)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📋 Training Results",
		Description: fmt.Sprintf("**Trainee:** %s\n**Result:** %s", trainee.Mention(), resultText),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Instructor", Value: interactionUser(i).Mention(), Inline: true},
			{Name: "Notes", Value: notes},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Training Completion Record"},
	}

	if _, err := s.ChannelMessageSendEmbed(c.bot.settings.TrainingResultsChannelID, embed); err != nil {
		log.Printf("Error posting training result: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Training results channel not found.")
	}

	if !sendDMSafe(s, trainee.ID, dmMessage, nil) {
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("✅ Result posted, but I couldn't DM %s (DMs off).", trainee.Mention()))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("✅ Training result posted and DM sent to %s.", trainee.Mention()))
}

// AffiliatePostCommand handles the /affiliatepost command
type AffiliatePostCommand struct {
	BaseCommand
	bot *Bot
}

// NewAffiliatePostCommand creates a new affiliate post command handler
func NewAffiliatePostCommand(bot *Bot) *AffiliatePostCommand {
	return &AffiliatePostCommand{
		BaseCommand: BaseCommand{
			Name:        "affiliatepost",
			Description: "Post a custom affiliate embed with advanced options",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "The title of the affiliate embed",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "description",
					Description: "The description/text content of the embed",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "image_url",
					Description: "Optional: Main image URL (leave empty for no image)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "thumbnail_url",
					Description: "Optional: Small thumbnail image in top-right corner",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "color",
					Description: "Optional: Hex code (#FF5733) or color name (blue, green, red, gold, purple)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "footer_text",
					Description: "Optional: Custom footer text",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "author_name",
					Description: "Optional: Author name at the top of the embed",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "Optional: URL that the title links to",
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the affiliatepost command
func (c *AffiliatePostCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.bot.isStaff(i) {
		return RespondWithEphemeralMessage(s, i, "⛔ You do not have permission to use this command.")
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	title := opts["title"].StringValue()
	description := opts["description"].StringValue()
	imageURL := stringOption(opts, "image_url", "")
	thumbnailURL := stringOption(opts, "thumbnail_url", "")
	colorInput := stringOption(opts, "color", "blue")
	footerText := stringOption(opts, "footer_text", "")
	authorName := stringOption(opts, "author_name", "")
	titleURL := stringOption(opts, "url", "")

	embedColor, err := parseEmbedColor(colorInput)
	if err != nil {
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("⚠️ Invalid color: `%s`\nUse a color name or hex code (#FF5733)", colorInput))
	}

	if imageURL != "" && !validURL(imageURL) {
		return RespondWithEphemeralMessage(s, i, "❌ Invalid image URL! Must start with `http://` or `https://`")
	}
	if thumbnailURL != "" && !validURL(thumbnailURL) {
		return RespondWithEphemeralMessage(s, i, "❌ Invalid thumbnail URL! Must start with `http://` or `https://`")
	}
	if titleURL != "" && !validURL(titleURL) {
		return RespondWithEphemeralMessage(s, i, "❌ Invalid title URL! Must start with `http://` or `https://`")
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       embedColor,
		URL:         titleURL,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	if authorName != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    authorName,
			IconURL: interactionUser(i).AvatarURL(""),
		}
	}
	if imageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}
	if thumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnailURL}
	}

	if footerText == "" {
		footerText = fmt.Sprintf("Posted by %s", interactionDisplayName(i))
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text:    footerText,
		IconURL: interactionUser(i).AvatarURL(""),
	}

	channelID := c.bot.settings.AffiliateChannelID
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("Error posting affiliate embed: %v", err)
		return RespondWithEphemeralMessage(s, i, "❌ Affiliate channel not found! Please contact an administrator.")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("✅ Affiliate embed posted successfully in <#%s>!", channelID))
}
