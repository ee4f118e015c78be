package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ward28/wardbot/internal/board"
	"github.com/ward28/wardbot/internal/ward"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Slack    SlackConfig
	Mail     MailConfig
	Trello   TrelloConfig
	Channels ChannelConfig
	Cron     CronConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// SlackConfig holds Slack integration settings.
type SlackConfig struct {
	BotToken      string
	SigningSecret string
}

// MailConfig holds Gmail delivery settings for the speakers email.
type MailConfig struct {
	From              string
	Recipient         string
	DryRunRecipient   string
	GmailClientID     string
	GmailClientSecret string //nolint:gosec // G117: OAuth client config
	GmailRefreshToken string //nolint:gosec // G117: OAuth token config
}

// TrelloConfig holds Trello API credentials and board/list wiring.
type TrelloConfig struct {
	APIKey         string
	APIToken       string //nolint:gosec // G117: API token config
	MembersBoardID string
	InterviewLists []string
	ExtendLists    []string
	SetApartLists  []string
}

// CallingLists pairs the configured calling lists with their stages.
func (c *TrelloConfig) CallingLists() []board.CallingList {
	lists := make([]board.CallingList, 0, len(c.ExtendLists)+len(c.SetApartLists))
	for _, id := range c.ExtendLists {
		lists = append(lists, board.CallingList{ID: id, Stage: ward.StageNeedsCallingExtended})
	}
	for _, id := range c.SetApartLists {
		lists = append(lists, board.CallingList{ID: id, Stage: ward.StageNeedsSettingApart})
	}
	return lists
}

// ChannelConfig holds the Slack channels the bot posts to.
type ChannelConfig struct {
	Bishopric         string
	WardCouncil       string
	AutomationTesting string
}

// CronConfig holds trigger endpoint authentication.
type CronConfig struct {
	Secret string //nolint:gosec // G117: shared secret config
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only.
func Load() (*Config, error) {
	redisDB, err := getEnvInt("WARDBOT_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("WARDBOT_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("WARDBOT_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateLimitRPS, err := getEnvFloat("WARDBOT_SERVER_RATE_LIMIT_RPS", 5)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateLimitBurst, err := getEnvInt("WARDBOT_SERVER_RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	defaultCallings := board.DefaultCallingLists()

	cfg := &Config{
		Server: ServerConfig{
			Addr:           getEnv("WARDBOT_SERVER_ADDR", ":8080"),
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			RateLimitRPS:   rateLimitRPS,
			RateLimitBurst: rateLimitBurst,
		},
		Redis: RedisConfig{
			Addr:     getEnv("WARDBOT_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("WARDBOT_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Slack: SlackConfig{
			BotToken:      getEnv("WARDBOT_SLACK_BOT_TOKEN", ""),
			SigningSecret: getEnv("WARDBOT_SLACK_SIGNING_SECRET", ""),
		},
		Mail: MailConfig{
			From:              getEnv("WARDBOT_MAIL_FROM", ""),
			Recipient:         getEnv("WARDBOT_MAIL_RECIPIENT", ""),
			DryRunRecipient:   getEnv("WARDBOT_MAIL_DRY_RUN_RECIPIENT", ""),
			GmailClientID:     getEnv("WARDBOT_GMAIL_CLIENT_ID", ""),
			GmailClientSecret: getEnv("WARDBOT_GMAIL_CLIENT_SECRET", ""),
			GmailRefreshToken: getEnv("WARDBOT_GMAIL_REFRESH_TOKEN", ""),
		},
		Trello: TrelloConfig{
			APIKey:         getEnv("WARDBOT_TRELLO_API_KEY", ""),
			APIToken:       getEnv("WARDBOT_TRELLO_API_TOKEN", ""),
			MembersBoardID: getEnv("WARDBOT_TRELLO_MEMBERS_BOARD_ID", board.DefaultMembersBoardID),
			InterviewLists: getEnvList("WARDBOT_TRELLO_INTERVIEW_LIST_IDS", []string{board.DefaultInterviewListID}),
			ExtendLists:    getEnvList("WARDBOT_TRELLO_EXTEND_LIST_IDS", []string{defaultCallings[0].ID}),
			SetApartLists:  getEnvList("WARDBOT_TRELLO_SET_APART_LIST_IDS", []string{defaultCallings[1].ID, defaultCallings[2].ID}),
		},
		Channels: ChannelConfig{
			Bishopric:         getEnv("WARDBOT_CHANNEL_BISHOPRIC", ward.ChannelBishopric),
			WardCouncil:       getEnv("WARDBOT_CHANNEL_WARD_COUNCIL", ward.ChannelWardCouncil),
			AutomationTesting: getEnv("WARDBOT_CHANNEL_AUTOMATION_TESTING", ward.ChannelAutomationTesting),
		},
		Cron: CronConfig{
			Secret: getEnv("WARDBOT_CRON_SECRET", ""),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.Slack.BotToken == "" {
		return errors.New("WARDBOT_SLACK_BOT_TOKEN is required")
	}
	if c.Slack.SigningSecret == "" {
		return errors.New("WARDBOT_SLACK_SIGNING_SECRET is required")
	}
	if c.Cron.Secret == "" {
		return errors.New("WARDBOT_CRON_SECRET is required")
	}

	if c.Mail.From == "" || c.Mail.Recipient == "" {
		log.Warn().Msg("mail sender or recipient unset; the speakers email cannot be delivered")
	}
	if c.Trello.APIKey == "" || c.Trello.APIToken == "" {
		log.Warn().Msg("Trello credentials unset; interview endpoints will fail")
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("WARDBOT_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("WARDBOT_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("WARDBOT_SERVER_RATE_LIMIT_RPS must be positive, got %g", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("WARDBOT_SERVER_RATE_LIMIT_BURST must be >= 1, got %d", c.Server.RateLimitBurst)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
