package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// defaultChatID is the channel the watcher reports to when
// TELEGRAM_CHAT_ID is not set.
const defaultChatID = "-1002910685507"

// defaultPeriod is the pause between watch passes.
const defaultPeriod = 30 * time.Minute

// Config carries everything the watcher needs from the environment.
type Config struct {
	// EduUsername and EduPassword authenticate against the registration
	// system.
	EduUsername string
	EduPassword string

	// BotToken and ChatID identify the Telegram delivery target.
	BotToken string
	ChatID   string

	// DataDir holds the current and previous snapshot files; ArchiveDir
	// receives a timestamped copy of every snapshot.
	DataDir    string
	ArchiveDir string

	// Period is the pause between passes in watch mode.
	Period time.Duration
}

// Load reads configuration from the environment, first loading a .env
// file if one is present in the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
		log.Debug("no .env file found, using process environment")
	}

	cfg := &Config{
		EduUsername: os.Getenv("EDU_USERNAME"),
		EduPassword: os.Getenv("EDU_PASSWORD"),
		BotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:      envOr("TELEGRAM_CHAT_ID", defaultChatID),
		DataDir:     envOr("DATA_DIR", "."),
		ArchiveDir:  envOr("ARCHIVE_DIR", "archive"),
		Period:      defaultPeriod,
	}

	if raw := os.Getenv("WATCH_PERIOD"); raw != "" {
		period, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing WATCH_PERIOD %q: %w", raw, err)
		}
		if period <= 0 {
			return nil, fmt.Errorf("WATCH_PERIOD must be positive, got %q", raw)
		}
		cfg.Period = period
	}

	return cfg, nil
}

// ValidateScrape checks the fields required to log in and fetch course
// tables. Telegram credentials are checked separately because dry-run
// passes do not need them.
func (c *Config) ValidateScrape() error {
	if c.EduUsername == "" {
		return fmt.Errorf("EDU_USERNAME is required")
	}
	if c.EduPassword == "" {
		return fmt.Errorf("EDU_PASSWORD is required")
	}
	return nil
}

// ValidateTelegram checks the fields required to deliver reports.
func (c *Config) ValidateTelegram() error {
	if c.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.ChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
