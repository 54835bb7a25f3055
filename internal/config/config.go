package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Generation GenerationConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Upload     UploadConfig
	Summary    SummaryConfig
	History    HistoryConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	RateLimit int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GenerationConfig struct {
	Provider string
	Timeout  time.Duration
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type UploadConfig struct {
	MaxFileSize int64
}

type SummaryConfig struct {
	WrapWidth int
}

type HistoryConfig struct {
	Enabled bool
}

// ConfigError reports a missing or invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			Env:       getEnv("ENV", "development"),
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			RateLimit: getEnvAsInt("EVALUATE_RATE_LIMIT", 20),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "smart_ats"),
		},
		Generation: GenerationConfig{
			Provider: getEnv("GENERATION_PROVIDER", ProviderGemini),
			Timeout:  getEnvAsDuration("GENERATION_TIMEOUT", "60s"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.2),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			Model:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Summary: SummaryConfig{
			WrapWidth: getEnvAsInt("SUMMARY_WRAP_WIDTH", 80),
		},
		History: HistoryConfig{
			Enabled: getEnvAsBool("HISTORY_ENABLED", false),
		},
	}
}

// Validate checks that the selected generation provider can be constructed.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return &ConfigError{Field: "GEMINI_API_KEY", Message: "GEMINI_API_KEY is required for the gemini provider"}
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return &ConfigError{Field: "OPENROUTER_API_KEY", Message: "OPENROUTER_API_KEY is required for the openrouter provider"}
		}
	default:
		return &ConfigError{
			Field:   "GENERATION_PROVIDER",
			Message: fmt.Sprintf("unknown GENERATION_PROVIDER %q (want %q or %q)", c.Generation.Provider, ProviderGemini, ProviderOpenRouter),
		}
	}

	if c.Generation.Timeout <= 0 {
		return &ConfigError{Field: "GENERATION_TIMEOUT", Message: "GENERATION_TIMEOUT must be positive"}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
