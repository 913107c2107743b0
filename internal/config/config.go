package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath     = "config.toml"
	DefaultHTTPAddr       = ":8080"
	DefaultGroqBaseURL    = "https://api.groq.com/openai/v1"
	DefaultTimeoutSeconds = 30
	DefaultModel          = "mixtral-8x7b-32768"
	DefaultHistoryLimit   = 200
	DefaultContextWindow  = 10
	DefaultPersona        = "you are a helpful assistant."
	DefaultSupportURL     = "https://t.me/ai_mait_llm_gpt_bot/support"
	DefaultPGHost         = "127.0.0.1"
	DefaultPGPort         = 5432
	DefaultPGUser         = "postgres"
	DefaultPGDatabase     = "aimate"
	DefaultPGSSLMode      = "disable"
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Telegram TelegramConfig `toml:"telegram"`
	Groq     GroqConfig     `toml:"groq"`
	Postgres PostgresConfig `toml:"postgres"`
	Bot      BotConfig      `toml:"bot"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token" validate:"required"`
}

type GroqConfig struct {
	APIKey         string `toml:"api_key" validate:"required"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

// Model is one selectable completion model.
type Model struct {
	ID    string `toml:"id" validate:"required"`
	Label string `toml:"label"`
}

// BotConfig holds the conversation engine settings: the supported model set,
// the stored-history retention cap and the per-call context window.
type BotConfig struct {
	DefaultModel  string  `toml:"default_model" validate:"required"`
	Models        []Model `toml:"models" validate:"min=1,dive"`
	HistoryLimit  int     `toml:"history_limit" validate:"gt=0"`
	ContextWindow int     `toml:"context_window" validate:"gt=0"`
	Persona       string  `toml:"persona"`
	SupportURL    string  `toml:"support_url"`
}

// Supported reports whether id names a configured model.
func (c BotConfig) Supported(id string) bool {
	for _, m := range c.Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// Load reads the TOML config at path, applying defaults first and secret
// environment overrides (TELEGRAM_BOT_TOKEN, GROQ_API_KEY) last.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Groq: GroqConfig{
			BaseURL:        DefaultGroqBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Bot: BotConfig{
			DefaultModel: DefaultModel,
			Models: []Model{
				{ID: "mixtral-8x7b-32768", Label: "Mixtral 8x7B"},
				{ID: "llama2-70b-4096", Label: "LLaMA2 70B"},
			},
			HistoryLimit:  DefaultHistoryLimit,
			ContextWindow: DefaultContextWindow,
			Persona:       DefaultPersona,
			SupportURL:    DefaultSupportURL,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.Groq.APIKey = key
	}

	return cfg, nil
}

// Validate checks the loaded configuration, including the cross-field
// constraint that the default model is one of the configured models.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if !cfg.Bot.Supported(cfg.Bot.DefaultModel) {
		return fmt.Errorf("default model %q is not in the configured model set", cfg.Bot.DefaultModel)
	}
	if cfg.Bot.ContextWindow > cfg.Bot.HistoryLimit {
		return fmt.Errorf("context window %d exceeds history limit %d", cfg.Bot.ContextWindow, cfg.Bot.HistoryLimit)
	}
	return nil
}
