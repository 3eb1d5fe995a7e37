package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for values that rarely change between deployments.
const (
	defaultVoteGoal       = 5
	defaultStatusInterval = 30 * time.Second
	defaultSessionPath    = "session_data.json"
	defaultRPLogPath      = "rp_logs.json"
	defaultStatusAPIURL   = "https://api.policeroleplay.community/v1/server"
)

// Config holds every externally supplied value the bot needs. It is loaded
// once at process start and injected; components never re-declare role,
// channel or URL literals.
type Config struct {
	// Discord credentials
	Token         string
	ApplicationID string
	GuildID       string

	// Role IDs
	StaffAdminRoleID     string
	StaffModeratorRoleID string
	HostRoleID           string
	SessionPingRoleID    string
	TrainingPingRoleID   string

	// MasterID is the bot owner, allowed past every permission check
	MasterID string

	// Channel IDs
	PromotionsChannelID      string
	InfractionsChannelID     string
	RPLogsChannelID          string
	AnnounceChannelID        string
	TrainingChannelID        string
	TrainingResultsChannelID string
	AffiliateChannelID       string
	StatusChannelID          string

	// Banner image URLs
	PromotionBannerURL  string
	InfractionBannerURL string
	RoleplayBannerURL   string
	SessionBannerURL    string
	StatusBannerURL     string

	// Game server identity shown in the status embeds
	ServerName  string
	ServerOwner string
	ServerCode  string

	// Live status API
	StatusAPIURL string
	StatusAPIKey string

	// Session vote threshold
	VoteGoal int

	// Status poller interval
	StatusInterval time.Duration

	// JSON document paths
	SessionDataPath string
	RPLogDataPath   string
}

// Validate ensures the configuration meets minimum requirements.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("DISCORD_TOKEN is required")
	}

	if c.VoteGoal < 1 {
		return errors.New("VOTE_GOAL must be at least 1")
	}

	return nil
}

// Load reads the configuration from the environment, consulting a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := &Config{
		Token:         os.Getenv("DISCORD_TOKEN"),
		ApplicationID: os.Getenv("APPLICATION_ID"),
		GuildID:       os.Getenv("GUILD_ID"),

		StaffAdminRoleID:     os.Getenv("STAFF_ADMIN_ROLE_ID"),
		StaffModeratorRoleID: os.Getenv("STAFF_MODERATOR_ROLE_ID"),
		HostRoleID:           os.Getenv("HOST_ROLE_ID"),
		SessionPingRoleID:    os.Getenv("SESSION_PING_ROLE_ID"),
		TrainingPingRoleID:   os.Getenv("TRAINING_PING_ROLE_ID"),
		MasterID:             os.Getenv("MASTER_ID"),

		PromotionsChannelID:      os.Getenv("PROMOTIONS_CHANNEL_ID"),
		InfractionsChannelID:     os.Getenv("INFRACTIONS_CHANNEL_ID"),
		RPLogsChannelID:          os.Getenv("RP_LOGS_CHANNEL_ID"),
		AnnounceChannelID:        os.Getenv("ANNOUNCE_CHANNEL_ID"),
		TrainingChannelID:        os.Getenv("TRAINING_CHANNEL_ID"),
		TrainingResultsChannelID: os.Getenv("TRAINING_RESULTS_CHANNEL_ID"),
		AffiliateChannelID:       os.Getenv("AFFILIATE_CHANNEL_ID"),
		StatusChannelID:          os.Getenv("STATUS_CHANNEL_ID"),

		PromotionBannerURL:  os.Getenv("PROMOTION_BANNER_URL"),
		InfractionBannerURL: os.Getenv("INFRACTION_BANNER_URL"),
		RoleplayBannerURL:   os.Getenv("ROLEPLAY_BANNER_URL"),
		SessionBannerURL:    os.Getenv("SESSION_BANNER_URL"),
		StatusBannerURL:     os.Getenv("STATUS_BANNER_URL"),

		ServerName:  os.Getenv("SERVER_NAME"),
		ServerOwner: os.Getenv("SERVER_OWNER"),
		ServerCode:  os.Getenv("SERVER_CODE"),

		StatusAPIURL: getEnv("STATUS_API_URL", defaultStatusAPIURL),
		StatusAPIKey: os.Getenv("STATUS_API_KEY"),

		VoteGoal:       getEnvInt("VOTE_GOAL", defaultVoteGoal),
		StatusInterval: getEnvDuration("STATUS_INTERVAL", defaultStatusInterval),

		SessionDataPath: getEnv("SESSION_DATA_PATH", defaultSessionPath),
		RPLogDataPath:   getEnv("RP_LOG_DATA_PATH", defaultRPLogPath),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
