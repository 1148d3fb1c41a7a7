package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Gateways  GatewayConfig
	Ai        AIConfig
	Knowledge KnowledgeConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	RateLimitRPM       int
	RateLimitBurst     int
}

type DatabaseConfig struct {
	// pgvector DSN; empty keeps the document index in memory
	Connection string
}

type SessionConfig struct {
	Backend string // "memory" or "redis"
	TTL     time.Duration
}

type GatewayConfig struct {
	PricingBaseURL  string
	PricingAPIKey   string
	LocationBaseURL string
	LocationAPIKey  string
	Timeout         time.Duration
	LocationCache   time.Duration
}

type AIConfig struct {
	EmbeddingProvider  string // "openai", "ollama" or "fallback"
	EmbeddingModel     string
	EmbeddingDimension int
	EmbeddingCacheSize int
	LLMProvider        string // "ollama" or "openai"
	LLMModel           string
	OllamaBaseURL      string
	OpenAIBaseURL      string
	OpenAIAPIKey       string
}

type KnowledgeConfig struct {
	Sources     []string
	ChunkSize   int
	Concurrency int
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

var DefaultKnowledgeSources = []string{
	"https://www.ecoatm.com/pages/how-it-works",
	"https://www.ecoatm.com/pages/faq",
	"https://www.ecoatm.com/pages/about-us",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			RateLimitRPM:       getEnvAsInt("RATE_LIMIT_RPM", 60),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", "memory"),
			TTL:     getEnvAsDuration("SESSION_TTL", 0),
		},
		Gateways: GatewayConfig{
			PricingBaseURL:  getEnv("PRICING_BASE_URL", "http://localhost:4000"),
			PricingAPIKey:   getEnv("PRICING_API_KEY", ""),
			LocationBaseURL: getEnv("LOCATION_BASE_URL", "http://localhost:4001"),
			LocationAPIKey:  getEnv("LOCATION_API_KEY", ""),
			Timeout:         getEnvAsDuration("GATEWAY_TIMEOUT", 15*time.Second),
			LocationCache:   getEnvAsDuration("LOCATION_CACHE_TTL", time.Hour),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "fallback"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 1536),
			EmbeddingCacheSize: getEnvAsInt("EMBEDDING_CACHE_SIZE", 512),
			LLMProvider:        getEnv("LLM_PROVIDER", "openai"),
			LLMModel:           getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		},
		Knowledge: KnowledgeConfig{
			Sources:     getEnvAsList("KNOWLEDGE_SOURCES", DefaultKnowledgeSources),
			ChunkSize:   getEnvAsInt("KNOWLEDGE_CHUNK_SIZE", 1000),
			Concurrency: getEnvAsInt("KNOWLEDGE_CONCURRENCY", 4),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnv("OTEL_ENABLED", "false") == "true",
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "kiosk-assistant-backend"),
		},
	}
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	var problems []string

	if c.App.Port == "" {
		problems = append(problems, "APP_PORT is required")
	}
	if c.Knowledge.ChunkSize <= 0 {
		problems = append(problems, "KNOWLEDGE_CHUNK_SIZE must be positive")
	}
	if c.Knowledge.Concurrency <= 0 {
		problems = append(problems, "KNOWLEDGE_CONCURRENCY must be positive")
	}
	if c.Ai.EmbeddingDimension <= 0 {
		problems = append(problems, "EMBEDDING_DIMENSION must be positive")
	}
	if c.Gateways.Timeout <= 0 {
		problems = append(problems, "GATEWAY_TIMEOUT must be positive")
	}
	switch c.Session.Backend {
	case "memory", "redis":
	default:
		problems = append(problems, fmt.Sprintf("unknown SESSION_BACKEND %q", c.Session.Backend))
	}
	switch c.Ai.EmbeddingProvider {
	case "openai", "ollama", "fallback":
	default:
		problems = append(problems, fmt.Sprintf("unknown EMBEDDING_PROVIDER %q", c.Ai.EmbeddingProvider))
	}
	switch c.Ai.LLMProvider {
	case "openai", "ollama":
	default:
		problems = append(problems, fmt.Sprintf("unknown LLM_PROVIDER %q", c.Ai.LLMProvider))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("15s") or plain seconds ("15")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
