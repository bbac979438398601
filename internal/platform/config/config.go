// Package config loads service configuration from the environment so main
// stays lean. Every external system is optional: when its variables are
// unset the service falls back to in-memory implementations.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Server     Server
	Auth       Auth
	Postgres   Postgres
	Redis      RedisConfig
	Kafka      Kafka
	LLM        LLM
	Extraction Extraction
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// Auth configures token issuance and the seeded operator account.
type Auth struct {
	JWTSigningKey  string
	Issuer         string
	Audience       string
	AccessTokenTTL time.Duration

	// Seed operator credentials for environments without an operator
	// provisioning flow. Empty SeedClientID disables seeding.
	SeedOperatorName string
	SeedClientID     string
	SeedClientSecret string
}

// Postgres configures the relational stores. An empty URL selects the
// in-memory stores.
type Postgres struct {
	URL string
}

// RedisConfig configures the extraction cache. An empty URL disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the audit event publisher. Empty Brokers keeps audit
// events in the local store only.
type Kafka struct {
	Brokers []string
	Topic   string
}

// LLM configures the fallback extractor. An empty APIKey disables it.
type LLM struct {
	BaseURL      string
	APIKey       string
	Model        string
	MaxTextBytes int
	Timeout      time.Duration
}

// Extraction tunes the extraction pipeline.
type Extraction struct {
	CacheTTL time.Duration
}

// FromEnv builds the configuration from ADWATCH_* environment variables,
// applying development defaults for anything unset.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envOr("ADWATCH_ADDR", ":8080"),
			RequestTimeout:  envDurationOr("ADWATCH_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: envDurationOr("ADWATCH_SHUTDOWN_TIMEOUT", 10*time.Second),
			LogLevel:        envOr("ADWATCH_LOG_LEVEL", "info"),
			LogFormat:       envOr("ADWATCH_LOG_FORMAT", "json"),
		},
		Auth: Auth{
			// Default is for development only and must be overridden in production.
			JWTSigningKey:    envOr("ADWATCH_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:           envOr("ADWATCH_JWT_ISSUER", "adwatch"),
			Audience:         envOr("ADWATCH_JWT_AUDIENCE", "adwatch-api"),
			AccessTokenTTL:   envDurationOr("ADWATCH_ACCESS_TOKEN_TTL", 15*time.Minute),
			SeedOperatorName: envOr("ADWATCH_SEED_OPERATOR_NAME", "Development Operator"),
			SeedClientID:     os.Getenv("ADWATCH_SEED_CLIENT_ID"),
			SeedClientSecret: os.Getenv("ADWATCH_SEED_CLIENT_SECRET"),
		},
		Postgres: Postgres{
			URL: os.Getenv("ADWATCH_POSTGRES_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("ADWATCH_REDIS_URL"),
			PoolSize:     envIntOr("ADWATCH_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("ADWATCH_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("ADWATCH_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("ADWATCH_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("ADWATCH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(os.Getenv("ADWATCH_KAFKA_BROKERS")),
			Topic:   envOr("ADWATCH_AUDIT_TOPIC", "adwatch.audit"),
		},
		LLM: LLM{
			BaseURL:      envOr("ADWATCH_LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:       os.Getenv("ADWATCH_LLM_API_KEY"),
			Model:        envOr("ADWATCH_LLM_MODEL", "gpt-4o-mini"),
			MaxTextBytes: envIntOr("ADWATCH_LLM_MAX_TEXT_BYTES", 15000),
			Timeout:      envDurationOr("ADWATCH_LLM_TIMEOUT", 60*time.Second),
		},
		Extraction: Extraction{
			CacheTTL: envDurationOr("ADWATCH_EXTRACTION_CACHE_TTL", 24*time.Hour),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitNonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
