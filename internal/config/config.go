package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port         string
	Env          string
	DocsPath     string
	MaxBodyBytes int64

	// Completion provider
	Provider            string
	GroqAPIKey          string
	GroqBaseURL         string
	GroqModel           string
	GeminiAPIKey        string
	GeminiModel         string
	Temperature         float32
	ProviderTimeout     time.Duration
	ProviderErrorDetail bool

	// Chat history
	HistoryBackend     string
	HistoryQueueSize   int
	HistoryXLSXPath    string
	HistoryRedisStream string

	// Database
	DatabaseURL   string
	MigrationsDir string

	// Redis
	RedisURL string

	// Frontend
	FrontendURL string
}

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	HistoryNone     = "none"
	HistoryXLSX     = "xlsx"
	HistoryPostgres = "postgres"
	HistoryRedis    = "redis"
)

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		DocsPath:            getEnvOrDefault("DOCS_PATH", "/apidocs"),
		MaxBodyBytes:        int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 1<<20)),
		Provider:            strings.ToLower(getEnvOrDefault("PROVIDER", ProviderGroq)),
		GroqBaseURL:         getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:           getEnvOrDefault("GROQ_MODEL", "llama-3.1-8b-instant"),
		GeminiModel:         getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		Temperature:         getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.7),
		ProviderTimeout:     getEnvAsDurationOrDefault("PROVIDER_TIMEOUT", 30*time.Second),
		ProviderErrorDetail: getEnvAsBoolOrDefault("PROVIDER_ERROR_DETAIL", true),
		HistoryBackend:      strings.ToLower(getEnvOrDefault("HISTORY_BACKEND", HistoryNone)),
		HistoryQueueSize:    getEnvAsIntOrDefault("HISTORY_QUEUE_SIZE", 100),
		HistoryXLSXPath:     getEnvOrDefault("HISTORY_XLSX_PATH", "chat_history.xlsx"),
		HistoryRedisStream:  getEnvOrDefault("HISTORY_REDIS_STREAM", "chat:history"),
		MigrationsDir:       getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "*"),
	}

	// Secrets are only required for the backends actually selected
	switch cfg.Provider {
	case ProviderGroq:
		cfg.GroqAPIKey = mustGetEnv("GROQ_API_KEY")
	case ProviderGemini:
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	default:
		panic(fmt.Sprintf("unsupported PROVIDER %q (expected groq or gemini)", cfg.Provider))
	}

	switch cfg.HistoryBackend {
	case "", HistoryNone, HistoryXLSX:
	case HistoryPostgres:
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	case HistoryRedis:
		cfg.RedisURL = mustGetEnv("REDIS_URL")
	default:
		panic(fmt.Sprintf("unsupported HISTORY_BACKEND %q", cfg.HistoryBackend))
	}

	if cfg.HistoryQueueSize <= 0 {
		cfg.HistoryQueueSize = 100
	}

	return cfg
}

// HistoryEnabled reports whether a history backend is configured.
func (c *Config) HistoryEnabled() bool {
	return c.HistoryBackend != "" && c.HistoryBackend != HistoryNone
}

// ProviderAPIKey returns the credential of the selected provider.
func (c *Config) ProviderAPIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float32) float32 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return defaultVal
	}
	return float32(f)
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
