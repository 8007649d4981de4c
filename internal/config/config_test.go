package config

import (
	"testing"
	"time"
)

func setScrapeEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EDU_USERNAME", "student")
	t.Setenv("EDU_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setScrapeEnv(t)
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("WATCH_PERIOD", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("ARCHIVE_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.ChatID != defaultChatID {
		t.Errorf("expected default chat ID, got %q", cfg.ChatID)
	}
	if cfg.DataDir != "." || cfg.ArchiveDir != "archive" {
		t.Errorf("unexpected directories %q %q", cfg.DataDir, cfg.ArchiveDir)
	}
	if cfg.Period != defaultPeriod {
		t.Errorf("expected default period, got %v", cfg.Period)
	}
}

func TestLoadPeriod(t *testing.T) {
	setScrapeEnv(t)

	t.Run("valid duration", func(t *testing.T) {
		t.Setenv("WATCH_PERIOD", "15m")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("loading config: %v", err)
		}
		if cfg.Period != 15*time.Minute {
			t.Errorf("expected 15m, got %v", cfg.Period)
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("WATCH_PERIOD", "soon")
		if _, err := Load(); err == nil {
			t.Error("expected error for unparsable period")
		}
	})

	t.Run("non-positive duration", func(t *testing.T) {
		t.Setenv("WATCH_PERIOD", "-5m")
		if _, err := Load(); err == nil {
			t.Error("expected error for negative period")
		}
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateScrape(); err == nil {
		t.Error("expected error for missing credentials")
	}
	if err := cfg.ValidateTelegram(); err == nil {
		t.Error("expected error for missing Telegram settings")
	}

	cfg = &Config{
		EduUsername: "student",
		EduPassword: "secret",
		BotToken:    "token",
		ChatID:      "-100",
	}
	if err := cfg.ValidateScrape(); err != nil {
		t.Errorf("unexpected scrape validation error: %v", err)
	}
	if err := cfg.ValidateTelegram(); err != nil {
		t.Errorf("unexpected telegram validation error: %v", err)
	}
}
