package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config carries process-wide settings resolved from the environment.
type Config struct {
	Environment    string
	ServiceName    string
	ServiceVersion string

	HTTPAddr string

	// DatabaseDriver selects sqlite or postgres. The default in-memory
	// sqlite database scopes all state to the running session.
	DatabaseDriver string
	DatabaseDSN    string

	TracingEnabled          bool
	TracingExporterEndpoint string
	TracingExporterProtocol string
	TracingSamplingRatio    float64

	DocumentCacheTTL time.Duration

	ChatMessageMaxAge   time.Duration
	ChatPruneInterval   time.Duration
	SeedSampleDocuments bool
}

// Load resolves configuration from the environment, reading a local .env
// file first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:             getEnv("PROPOSALKIT_ENV", "development"),
		ServiceName:             getEnv("PROPOSALKIT_SERVICE_NAME", "proposalkit"),
		ServiceVersion:          getEnv("PROPOSALKIT_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("PROPOSALKIT_HTTP_ADDR", ":8080"),
		DatabaseDriver:          getEnv("PROPOSALKIT_DB_DRIVER", "sqlite"),
		DatabaseDSN:             getEnv("PROPOSALKIT_DB_DSN", "file::memory:?cache=shared"),
		TracingEnabled:          getBool("PROPOSALKIT_TRACING_ENABLED", false),
		TracingExporterEndpoint: getEnv("PROPOSALKIT_TRACING_ENDPOINT", ""),
		TracingExporterProtocol: getEnv("PROPOSALKIT_TRACING_PROTOCOL", "grpc"),
		TracingSamplingRatio:    getFloat("PROPOSALKIT_TRACING_SAMPLING_RATIO", 0.1),
		DocumentCacheTTL:        getDuration("PROPOSALKIT_DOCUMENT_CACHE_TTL", 5*time.Second),
		ChatMessageMaxAge:       getDuration("PROPOSALKIT_CHAT_MAX_AGE", 12*time.Hour),
		ChatPruneInterval:       getDuration("PROPOSALKIT_CHAT_PRUNE_INTERVAL", 10*time.Minute),
		SeedSampleDocuments:     getBool("PROPOSALKIT_SEED_SAMPLE", true),
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
