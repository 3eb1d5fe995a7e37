package status

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sfcrp/sfcrp-bot/internal/common/clock"
)

const (
	colorBlue  = 0x3498db
	colorGreen = 0x2ecc71
)

// unknownValue is rendered for any counter the API did not supply
const unknownValue = "?"

// Poller keeps the live status embed current. Rebuild posts the full set of
// status messages and every tick afterwards edits only the last one.
type Poller struct {
	client    Client
	messenger Messenger
	clock     clock.Clock
	interval  time.Duration

	channelID   string
	serverName  string
	serverOwner string
	serverCode  string
	bannerURL   string
	hostRoleID  string

	mu         sync.Mutex
	messageIDs []string
	startedAt  time.Time
}

// NewPoller creates a status poller
func NewPoller(cfg *Config) (*Poller, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	if cfg.Messenger == nil {
		return nil, ErrNilMessenger
	}
	if cfg.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Poller{
		client:      cfg.Client,
		messenger:   cfg.Messenger,
		clock:       clk,
		interval:    interval,
		channelID:   cfg.ChannelID,
		serverName:  cfg.ServerName,
		serverOwner: cfg.ServerOwner,
		serverCode:  cfg.ServerCode,
		bannerURL:   cfg.BannerURL,
		hostRoleID:  cfg.HostRoleID,
	}, nil
}

// Start runs the refresh loop until ctx is cancelled
func (p *Poller) Start(ctx context.Context) {
	for {
		select {
		case <-time.After(p.interval):
			p.Tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Rebuild clears the tracked messages, posts the full status display and
// restarts the uptime counter. Callers purge the channel first.
func (p *Poller) Rebuild(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messageIDs = nil

	embeds := []*discordgo.MessageEmbed{
		p.bannerEmbed(),
		p.sessionInfoEmbed(),
		p.serverInfoEmbed(),
		p.liveEmbed(unknownValue, unknownValue, "0 minutes"),
	}

	for _, embed := range embeds {
		id, err := p.messenger.SendEmbed(p.channelID, embed)
		if err != nil {
			return fmt.Errorf("failed to send status embed: %w", err)
		}
		p.messageIDs = append(p.messageIDs, id)
	}

	p.startedAt = p.clock.Now()
	return nil
}

// Tick refreshes the live status message once. A tick before Rebuild, or one
// whose fetch or edit fails, is skipped; the next tick tries again.
func (p *Poller) Tick(ctx context.Context) {
	p.mu.Lock()
	if len(p.messageIDs) < embedCount {
		p.mu.Unlock()
		return
	}
	messageID := p.messageIDs[liveEmbedIndex]
	startedAt := p.startedAt
	p.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	players := unknownValue
	queue := unknownValue
	if srv, err := p.client.GetServerStatus(fetchCtx); err == nil {
		players = fmt.Sprintf("%d", srv.PlayerCount)
		queue = fmt.Sprintf("%d", srv.QueueLength)
	}

	uptime := unknownValue
	if !startedAt.IsZero() {
		minutes := int(p.clock.Now().Sub(startedAt).Minutes())
		uptime = fmt.Sprintf("%d minutes", minutes)
	}

	_ = p.messenger.EditEmbed(p.channelID, messageID, p.liveEmbed(players, queue, uptime))
}

func (p *Poller) bannerEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorBlue,
		Image: &discordgo.MessageEmbedImage{URL: p.bannerURL},
	}
}

func (p *Poller) sessionInfoEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Session Information",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Info",
				Value: "Sessions are hosted regularly. Watch this channel for start votes and announcements.",
			},
			{
				Name:  "Session Hosters",
				Value: fmt.Sprintf("<@&%s>", p.hostRoleID),
			},
			{
				Name:  "Assistance",
				Value: "If you need help during a session, open a ticket or contact a staff member.",
			},
		},
	}
}

func (p *Poller) serverInfoEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Server Information",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Server Name", Value: p.serverName, Inline: true},
			{Name: "Server Owner", Value: p.serverOwner, Inline: true},
			{Name: "Server Code", Value: p.serverCode, Inline: true},
		},
	}
}

func (p *Poller) liveEmbed(players, queue, uptime string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Live Server Status",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Last Updated",
				Value: fmt.Sprintf("<t:%d:R>", p.clock.Now().Unix()),
			},
			{Name: "Players", Value: players, Inline: true},
			{Name: "Queue", Value: queue, Inline: true},
			{Name: "Session Uptime", Value: uptime, Inline: true},
		},
	}
}
