package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	PublicBaseURL string
	StoragePath   string

	// Style transfer providers.
	StyleProvider     string
	ReplicateAPIToken string
	ReplicateBaseURL  string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAIQuality     string

	// Provider call tunables.
	APITimeout         time.Duration
	PollInterval       time.Duration
	PollTimeout        time.Duration
	UnitAttempts       int
	UnitRetryWait      time.Duration
	RateLimitRetries   int
	RateLimitBaseWait  time.Duration
	UnitPacing         time.Duration
	SupervisorInterval time.Duration

	// Retention.
	OrderTTLDays       int
	ResultImageTTLDays int

	// Email.
	ResendAPIKey string
	FromEmail    string
	FromName     string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		StoragePath:   getEnv("STORAGE_PATH", "./storage"),

		StyleProvider:     getEnv("STYLE_PROVIDER", "openai"),
		ReplicateAPIToken: os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateBaseURL:  getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:       getEnv("OPENAI_STYLIZE_MODEL", "gpt-image-1.5"),
		OpenAIQuality:     getEnv("OPENAI_STYLIZE_QUALITY", "low"),

		APITimeout:         time.Second * time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 120)),
		PollInterval:       time.Second * time.Duration(getEnvInt("POLLING_INTERVAL_SECONDS", 5)),
		PollTimeout:        time.Second * time.Duration(getEnvInt("POLLING_TIMEOUT_SECONDS", 300)),
		UnitAttempts:       getEnvInt("UNIT_ATTEMPTS", 3),
		UnitRetryWait:      time.Second * time.Duration(getEnvInt("UNIT_RETRY_WAIT_SECONDS", 10)),
		RateLimitRetries:   getEnvInt("RATE_LIMIT_RETRIES", 4),
		RateLimitBaseWait:  time.Second * time.Duration(getEnvInt("RATE_LIMIT_BASE_WAIT_SECONDS", 15)),
		UnitPacing:         time.Second * time.Duration(getEnvInt("UNIT_PACING_SECONDS", 30)),
		SupervisorInterval: time.Second * time.Duration(getEnvInt("SUPERVISOR_INTERVAL_SECONDS", 20)),

		OrderTTLDays:       getEnvInt("ORDER_TTL_DAYS", 14),
		ResultImageTTLDays: getEnvInt("RESULT_IMAGE_TTL_DAYS", 14),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@artifyai.com"),
		FromName:     getEnv("FROM_NAME", "Artify"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	switch cfg.StyleProvider {
	case "openai", "replicate":
	default:
		return nil, fmt.Errorf("STYLE_PROVIDER must be openai or replicate, got %q", cfg.StyleProvider)
	}

	// Providers fetch source and style images over public URLs, so a missing
	// base URL makes every order fail at the provider rather than here.
	if cfg.AppEnv == "production" && cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("PUBLIC_BASE_URL is required in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
