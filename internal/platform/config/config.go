// Package config builds service configuration from the environment so main
// stays lean. Optional backends (postgres, redis, kafka) are enabled by
// their variables being set; everything runs on in-memory stores otherwise.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration.
type Config struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	PostgresDSN  string
	Redis        RedisConfig
	KafkaBrokers []string

	// AccountServiceURL and KycServiceURL point at the upstream providers the
	// readiness checks call. Empty values fall back to mock clients so the
	// service runs standalone in development.
	AccountServiceURL string
	KycServiceURL     string
	KycAPIKey         string

	// ReadinessCacheTTL bounds how long a readiness evaluation may be
	// served from cache. Short by default: stale readiness is worse than a
	// recomputation.
	ReadinessCacheTTL time.Duration

	// AuditBuffer is the async audit publisher's channel capacity.
	AuditBuffer int
}

// RedisConfig captures redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:              envOr("MINTGATE_ADDR", ":8080"),
		JWTSigningKey:     envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:         envOr("JWT_ISSUER", "mintgate"),
		JWTAudience:       envOr("JWT_AUDIENCE", "mintgate-api"),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		AccountServiceURL: os.Getenv("ACCOUNT_SERVICE_URL"),
		KycServiceURL:     os.Getenv("KYC_SERVICE_URL"),
		KycAPIKey:         os.Getenv("KYC_API_KEY"),
		ReadinessCacheTTL: durationOr("READINESS_CACHE_TTL", 30*time.Second),
		AuditBuffer:       intOr("AUDIT_BUFFER", 256),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
