package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/sfcrp/sfcrp-bot/internal/config"
	"github.com/sfcrp/sfcrp-bot/internal/handlers/discord"
	rplogRepo "github.com/sfcrp/sfcrp-bot/internal/repositories/rplog"
	sessionRepo "github.com/sfcrp/sfcrp-bot/internal/repositories/session"
	rplogService "github.com/sfcrp/sfcrp-bot/internal/services/rplog"
	sessionService "github.com/sfcrp/sfcrp-bot/internal/services/session"
	"github.com/sfcrp/sfcrp-bot/internal/services/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create the Discord session first so the adapters built on it can be
	// shared between the services and the bot
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Initialize repositories
	sessRepo, err := sessionRepo.NewJSON(&sessionRepo.Config{
		Path: cfg.SessionDataPath,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	logRepo, err := rplogRepo.NewJSON(&rplogRepo.Config{
		Path: cfg.RPLogDataPath,
	})
	if err != nil {
		log.Fatalf("Failed to create RP log repository: %v", err)
	}

	// Initialize services
	sessSvc, err := sessionService.New(&sessionService.Config{
		Repo: sessRepo,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	logSvc, err := rplogService.New(&rplogService.Config{
		Repo:     logRepo,
		Resolver: discord.NewMemberResolver(dg),
	})
	if err != nil {
		log.Fatalf("Failed to create RP log service: %v", err)
	}

	// Initialize the status poller
	statusClient, err := status.NewHTTPClient(&status.ClientConfig{
		URL:    cfg.StatusAPIURL,
		APIKey: cfg.StatusAPIKey,
	})
	if err != nil {
		log.Fatalf("Failed to create status client: %v", err)
	}

	poller, err := status.NewPoller(&status.Config{
		Client:      statusClient,
		Messenger:   discord.NewChannelMessenger(dg),
		ChannelID:   cfg.StatusChannelID,
		Interval:    cfg.StatusInterval,
		ServerName:  cfg.ServerName,
		ServerOwner: cfg.ServerOwner,
		ServerCode:  cfg.ServerCode,
		BannerURL:   cfg.StatusBannerURL,
		HostRoleID:  cfg.HostRoleID,
	})
	if err != nil {
		log.Fatalf("Failed to create status poller: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:        dg,
		Settings:       cfg,
		SessionService: sessSvc,
		RPLogService:   logSvc,
		Poller:         poller,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Run the status refresh loop until shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go poller.Start(ctx)

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
