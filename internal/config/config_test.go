package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("DEFAULT_MODEL", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("PROMPT_TYPE", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultModel != "gemini-1.5-flash" {
		t.Fatalf("unexpected default model: %q", cfg.DefaultModel)
	}
	if cfg.OutputDir != "outputs" {
		t.Fatalf("unexpected output dir: %q", cfg.OutputDir)
	}
	if cfg.PromptType != "transcript" {
		t.Fatalf("unexpected prompt type: %q", cfg.PromptType)
	}
	if cfg.RequestTimeout != 120*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if cfg.GoogleBaseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Fatalf("unexpected base URL: %q", cfg.GoogleBaseURL)
	}
	if cfg.GoogleAPIKey != "" {
		t.Fatalf("expected empty credential, got %q", cfg.GoogleAPIKey)
	}
}

func TestLoadNormalizesValues(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "  key  ")
	t.Setenv("GOOGLE_BASE_URL", "https://example.com/v1beta/")
	t.Setenv("PROMPT_TYPE", " Summary ")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GoogleAPIKey != "key" {
		t.Fatalf("credential not trimmed: %q", cfg.GoogleAPIKey)
	}
	if cfg.GoogleBaseURL != "https://example.com/v1beta" {
		t.Fatalf("base URL not normalized: %q", cfg.GoogleBaseURL)
	}
	if cfg.PromptType != "summary" {
		t.Fatalf("prompt type not lowercased: %q", cfg.PromptType)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level not lowercased: %q", cfg.LogLevel)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadReadsAuxiliaryPlaceholders(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("IMGBB_API_KEY", "img-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Aux.TelegramChatID != "12345" || cfg.Aux.ImgBBAPIKey != "img-key" {
		t.Fatalf("auxiliary values not loaded: %+v", cfg.Aux)
	}
	if cfg.Aux.GmailSMTPServer != "smtp.gmail.com" || cfg.Aux.GmailSMTPPort != 587 {
		t.Fatalf("unexpected SMTP defaults: %+v", cfg.Aux)
	}
}
