package discord

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sfcrp/sfcrp-bot/internal/common/uuid"
	"github.com/sfcrp/sfcrp-bot/internal/config"
	"github.com/sfcrp/sfcrp-bot/internal/services/rplog"
	"github.com/sfcrp/sfcrp-bot/internal/services/session"
	"github.com/sfcrp/sfcrp-bot/internal/services/status"
)

// Component custom ID prefixes. The instance ID of the owning view is
// appended after the colon.
const (
	ComponentVoteCast          = "ssv_yes"
	ComponentVoteRetract       = "ssv_retract"
	ComponentVoteVoters        = "ssv_voters"
	ComponentTrainingJoin      = "training_join"
	ComponentTrainingAttendees = "training_attendees"
)

// purgeLimit is how many messages !stup and /stup clear from the status
// channel before rebuilding
const purgeLimit = 50

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID

	settings       *config.Config
	sessionService session.Service
	rplogService   rplog.Service
	poller         *status.Poller
	uuidGen        uuid.UUID

	votes     *voteRegistry
	trainings *trainingRegistry
}

// Config holds the configuration for the bot
type Config struct {
	// Discord session, created by the caller so adapters built on it can
	// be shared with other components
	Session *discordgo.Session

	// Application settings (role IDs, channel IDs, banners, vote goal)
	Settings *config.Config

	// Services
	SessionService session.Service
	RPLogService   rplog.Service

	// Status poller, rebuilt by the stup commands
	Poller *status.Poller

	// UUIDGenerator mints view instance IDs; defaults to the standard
	// generator
	UUIDGenerator uuid.UUID
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	if cfg.Settings == nil {
		return nil, errors.New("settings cannot be nil")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.RPLogService == nil {
		return nil, errors.New("rplog service cannot be nil")
	}

	if cfg.Poller == nil {
		return nil, errors.New("status poller cannot be nil")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	bot := &Bot{
		session:        cfg.Session,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		settings:       cfg.Settings,
		sessionService: cfg.SessionService,
		rplogService:   cfg.RPLogService,
		poller:         cfg.Poller,
		uuidGen:        gen,
		votes:          newVoteRegistry(),
		trainings:      newTrainingRegistry(),
	}

	// Text commands need message content; role toggling needs members
	cfg.Session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuildMembers

	// Register the interaction and message handlers
	cfg.Session.AddHandler(bot.handleInteraction)
	cfg.Session.AddHandler(bot.handleMessage)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewPromoteCommand(b),
		NewInfractionCommand(b),
		NewSayCommand(b),
		NewStaffTrainingCommand(b),
		NewTrainingResultCommand(b),
		NewAffiliatePostCommand(b),
		NewSSVCommand(b),
		NewSSUCommand(b),
		NewSSDCommand(b),
		NewSessionStatusCommand(b),
		NewSessionHistoryCommand(b),
		NewSessionStatsCommand(b),
		NewLogRPCommand(b),
		NewRPLogCommand(b),
		NewRPLeaderboardCommand(b),
		NewStupCommand(b),
	}

	for _, cmd := range handlers {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.settings.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.settings.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.settings.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.settings.GuildID
	if guildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction routes button clicks by custom ID prefix
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	prefix, instanceID, ok := strings.Cut(customID, ":")
	if !ok {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}

	switch prefix {
	case ComponentVoteCast:
		return b.handleVoteCast(s, i, instanceID)
	case ComponentVoteRetract:
		return b.handleVoteRetract(s, i, instanceID)
	case ComponentVoteVoters:
		return b.handleVoteVoters(s, i, instanceID)
	case ComponentTrainingJoin:
		return b.handleTrainingJoin(s, i, instanceID)
	case ComponentTrainingAttendees:
		return b.handleTrainingAttendees(s, i, instanceID)
	default:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleMessage handles the prefix text commands
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	// Text commands are guild-only
	if m.GuildID == "" {
		return
	}

	content := strings.TrimSpace(m.Content)
	switch {
	case content == "!stup":
		b.handleStatusRebuildText(s, m)
	case strings.HasPrefix(content, "!dqa "):
		b.handleRoleToggle(s, m, strings.TrimSpace(strings.TrimPrefix(content, "!dqa ")))
	}
}

// isStaff reports whether the invoker carries a staff role. The master ID
// passes every check.
func (b *Bot) isStaff(i *discordgo.InteractionCreate) bool {
	user := interactionUser(i)
	if user == nil {
		return false
	}

	if b.settings.MasterID != "" && user.ID == b.settings.MasterID {
		return true
	}

	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		if roleID == b.settings.StaffAdminRoleID || roleID == b.settings.StaffModeratorRoleID {
			return true
		}
	}

	return false
}

// canRebuildStatus gates the stup commands: the master or a session host
func (b *Bot) canRebuildStatus(userID string, roles []string) bool {
	if b.settings.MasterID != "" && userID == b.settings.MasterID {
		return true
	}

	for _, roleID := range roles {
		if roleID == b.settings.HostRoleID {
			return true
		}
	}

	return false
}

// purgeChannel deletes the most recent messages in a channel
func (b *Bot) purgeChannel(s *discordgo.Session, channelID string) error {
	msgs, err := s.ChannelMessages(channelID, purgeLimit, "", "", "")
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	if len(msgs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		ids = append(ids, msg.ID)
	}

	if err := s.ChannelMessagesBulkDelete(channelID, ids); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	return nil
}

// sendDMSafe sends a DM and reports delivery instead of failing the caller
func sendDMSafe(s *discordgo.Session, userID string, content string, embed *discordgo.MessageEmbed) bool {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Cannot open DM channel for %s: %v", userID, err)
		return false
	}

	if embed != nil {
		_, err = s.ChannelMessageSendEmbed(channel.ID, embed)
	} else {
		_, err = s.ChannelMessageSend(channel.ID, content)
	}
	if err != nil {
		log.Printf("Failed to DM %s: %v", userID, err)
		return false
	}

	return true
}

// voteRegistry tracks in-flight session start votes by instance ID
type voteRegistry struct {
	mu    sync.Mutex
	votes map[string]*voteView
}

// voteView ties a vote to the message displaying it
type voteView struct {
	vote      *session.Vote
	channelID string
	messageID string
	startedBy string
}

func newVoteRegistry() *voteRegistry {
	return &voteRegistry{votes: make(map[string]*voteView)}
}

func (r *voteRegistry) add(view *voteView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.votes[view.vote.ID()] = view
}

func (r *voteRegistry) get(id string) (*voteView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.votes[id]
	return view, ok
}

func (r *voteRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.votes, id)
}

// trainingRegistry tracks attendee sets for training announcements
type trainingRegistry struct {
	mu       sync.Mutex
	sessions map[string]*trainingView
}

// trainingView holds the attendees of one announcement in join order
type trainingView struct {
	seen  map[string]struct{}
	order []string
}

func newTrainingRegistry() *trainingRegistry {
	return &trainingRegistry{sessions: make(map[string]*trainingView)}
}

func (r *trainingRegistry) add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &trainingView{seen: make(map[string]struct{})}
}

// join records an attendee mention, once per member
func (r *trainingRegistry) join(id, mention string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.sessions[id]
	if !ok {
		return false
	}

	if _, dup := view.seen[mention]; !dup {
		view.seen[mention] = struct{}{}
		view.order = append(view.order, mention)
	}
	return true
}

// attendees returns the mentions in join order
func (r *trainingRegistry) attendees(id string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.sessions[id]
	if !ok {
		return nil, false
	}

	out := make([]string, len(view.order))
	copy(out, view.order)
	return out, true
}
