package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	Port    string
	AppMode string

	// Files
	CatalogPath string
	AssetDir    string
	CacheDir    string
	ResultsDir  string

	// Generation
	GenerationProvider    string
	OpenAIAPIKey          string
	OpenAIModel           string
	AzureEndpoint         string
	AzureAPIKey           string
	AzureAPIVersion       string
	GeminiAPIKey          string
	GeminiModel           string
	GenerationTimeout     time.Duration
	GenerationConcurrency int

	// Sessions
	SessionTTL time.Duration
	JWTSecret  string
	RedisAddr  string

	// Optional Postgres mirror of the exported responses
	PostgresURL string
	AdminKey    string
}

// Load reads configuration from a .env file if present, then from the
// environment, falling back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		AppMode:               getEnv("APP_MODE", "development"),
		CatalogPath:           getEnv("CATALOG_PATH", "data/pois.json"),
		AssetDir:              getEnv("ASSET_DIR", "assets"),
		CacheDir:              getEnv("CACHE_DIR", "cache"),
		ResultsDir:            getEnv("RESULTS_DIR", "results"),
		GenerationProvider:    getEnv("GENERATION_PROVIDER", "openai"),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", ""),
		AzureEndpoint:         getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureAPIKey:           getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureAPIVersion:       getEnv("AZURE_OPENAI_API_VERSION", ""),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", ""),
		GenerationTimeout:     getEnvDuration("GENERATION_TIMEOUT", 60*time.Second),
		GenerationConcurrency: getEnvInt("GENERATION_CONCURRENCY", 4),
		SessionTTL:            getEnvDuration("SESSION_TTL", 6*time.Hour),
		JWTSecret:             getEnv("JWT_SECRET", "change-me"),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		PostgresURL:           getEnv("POSTGRES_URL", ""),
		AdminKey:              getEnv("ADMIN_KEY", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppMode == "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("90s") or a plain number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
