package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kitbuilder587/prompt-optimizer/internal/domain"
)

var (
	ErrInvalidProvider = errors.New("LLM_PROVIDER must be openrouter or mock")
	ErrInvalidMode     = errors.New("invalid default mode")
	ErrInvalidTimeout  = errors.New("LLM_TIMEOUT_SEC must be positive")
	ErrNoFrontend      = errors.New("HTTP_ADDR or TELEGRAM_BOT_TOKEN is required")
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

type Config struct {
	HTTP        HTTPConfig
	Telegram    TelegramConfig
	Database    DatabaseConfig
	LLM         LLMConfig
	Prompt      PromptConfig
	Log         LogConfig
	RateLimit   RateLimitConfig
	DefaultMode string
}

type HTTPConfig struct {
	Addr string
}

type TelegramConfig struct {
	Token string
	Debug bool
}

// Enabled is false when no token is set; the bot is then not started.
func (c TelegramConfig) Enabled() bool {
	return c.Token != ""
}

type DatabaseConfig struct {
	URL string
}

type LLMConfig struct {
	Provider   string
	Timeout    time.Duration
	OpenRouter OpenRouterConfig
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Referer string
	Title   string
}

type PromptConfig struct {
	FastInstruction     string
	AdvancedInstruction string
	MaxInputLength      int
}

type LogConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr: getEnvAllowEmpty("HTTP_ADDR", ":8080"),
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
			Debug: getEnvBoolOrDefault("TELEGRAM_DEBUG", false),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenRouter)),
			Timeout:  time.Duration(getEnvIntOrDefault("LLM_TIMEOUT_SEC", 60)) * time.Second,
			OpenRouter: OpenRouterConfig{
				APIKey:  os.Getenv("OPENROUTER_API_KEY"),
				Model:   getEnvOrDefault("OPENROUTER_MODEL", "tngtech/deepseek-r1t2-chimera:free"),
				BaseURL: getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
				Referer: os.Getenv("OPENROUTER_REFERER"),
				Title:   getEnvOrDefault("OPENROUTER_TITLE", "Prompt Generator"),
			},
		},
		Prompt: PromptConfig{
			FastInstruction:     os.Getenv("PROMPT_FAST_INSTRUCTION"),
			AdvancedInstruction: os.Getenv("PROMPT_ADVANCED_INSTRUCTION"),
			MaxInputLength:      getEnvIntOrDefault("MAX_INPUT_CHARS", domain.DefaultMaxInputLength),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 10),
		},
		DefaultMode: getEnvOrDefault("DEFAULT_MODE", "fast"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks startup configuration. A missing API key is not an error
// here: the client reports it on every call so the front ends can show it.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderMock:
	default:
		return ErrInvalidProvider
	}
	if c.LLM.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if !domain.Mode(c.DefaultMode).IsValid() {
		return ErrInvalidMode
	}
	if c.HTTP.Addr == "" && !c.Telegram.Enabled() {
		return ErrNoFrontend
	}
	return nil
}

func (c *Config) Mode() domain.Mode {
	return domain.Mode(c.DefaultMode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty treats a set but empty variable as an explicit empty value.
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
