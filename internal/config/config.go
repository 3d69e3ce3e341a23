package config

import (
	"errors"
	"strings"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

type Config struct {
	GoogleAPIKey   string
	GoogleBaseURL  string
	DefaultModel   string
	OutputDir      string
	YouTubeURL     string
	PromptType     string
	RequestTimeout time.Duration
	ListenAddr     string
	LogLevel       string

	Aux AuxConfig
}

// AuxConfig holds credentials for auxiliary integrations (email, image
// hosting, notifications, social platforms). They are read at startup but
// unused by the core flow.
type AuxConfig struct {
	OpenAIAPIKey        string
	GmailAddress        string
	GmailSMTPServer     string
	GmailSMTPPort       int
	ImgBBAPIKey         string
	TelegramChatID      string
	TwitterBearerToken  string
	FacebookAccessToken string
	LinkedInAccessToken string
}

type envConfig struct {
	GoogleAPIKey          string `env:"GOOGLE_API_KEY"`
	GoogleBaseURL         string `env:"GOOGLE_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	DefaultModel          string `env:"DEFAULT_MODEL" envDefault:"gemini-1.5-flash"`
	OutputDir             string `env:"OUTPUT_DIR" envDefault:"outputs"`
	YouTubeURL            string `env:"YOUTUBE_URL"`
	PromptType            string `env:"PROMPT_TYPE" envDefault:"transcript"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"120"`
	ListenAddr            string `env:"LISTEN_ADDR" envDefault:":8080"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	GmailAddress        string `env:"GMAIL_ADDRESS"`
	GmailSMTPServer     string `env:"GMAIL_SMTP_SERVER" envDefault:"smtp.gmail.com"`
	GmailSMTPPort       int    `env:"GMAIL_SMTP_PORT" envDefault:"587"`
	ImgBBAPIKey         string `env:"IMGBB_API_KEY"`
	TelegramChatID      string `env:"TELEGRAM_CHAT_ID"`
	TwitterBearerToken  string `env:"TWITTER_BEARER_TOKEN"`
	FacebookAccessToken string `env:"FACEBOOK_ACCESS_TOKEN"`
	LinkedInAccessToken string `env:"LINKEDIN_ACCESS_TOKEN"`
}

func Load() (Config, error) {
	var raw envConfig
	if err := cenv.Parse(&raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		GoogleAPIKey:   strings.TrimSpace(raw.GoogleAPIKey),
		GoogleBaseURL:  strings.TrimRight(strings.TrimSpace(raw.GoogleBaseURL), "/"),
		DefaultModel:   strings.TrimSpace(raw.DefaultModel),
		OutputDir:      strings.TrimSpace(raw.OutputDir),
		YouTubeURL:     strings.TrimSpace(raw.YouTubeURL),
		PromptType:     strings.ToLower(strings.TrimSpace(raw.PromptType)),
		RequestTimeout: time.Duration(raw.RequestTimeoutSeconds) * time.Second,
		ListenAddr:     strings.TrimSpace(raw.ListenAddr),
		LogLevel:       strings.ToLower(strings.TrimSpace(raw.LogLevel)),
		Aux: AuxConfig{
			OpenAIAPIKey:        strings.TrimSpace(raw.OpenAIAPIKey),
			GmailAddress:        strings.TrimSpace(raw.GmailAddress),
			GmailSMTPServer:     strings.TrimSpace(raw.GmailSMTPServer),
			GmailSMTPPort:       raw.GmailSMTPPort,
			ImgBBAPIKey:         strings.TrimSpace(raw.ImgBBAPIKey),
			TelegramChatID:      strings.TrimSpace(raw.TelegramChatID),
			TwitterBearerToken:  strings.TrimSpace(raw.TwitterBearerToken),
			FacebookAccessToken: strings.TrimSpace(raw.FacebookAccessToken),
			LinkedInAccessToken: strings.TrimSpace(raw.LinkedInAccessToken),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks structural settings only. The credential is deliberately
// not required here: it can arrive later via flag or per-request override.
func (c Config) Validate() error {
	if c.GoogleBaseURL == "" {
		return errors.New("GOOGLE_BASE_URL must not be empty")
	}
	if c.DefaultModel == "" {
		return errors.New("DEFAULT_MODEL must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("OUTPUT_DIR must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be > 0")
	}
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	return nil
}
