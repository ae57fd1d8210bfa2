package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Sources   SourcesConfig
	Cache     CacheConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type RedisConfig struct {
	// Enabled selects Redis as the durable cache medium; when false the
	// service falls back to an in-process map and loses cross-restart reuse.
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	// Namespace prefixes every cache key written by this deployment.
	Namespace string
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type SourcesConfig struct {
	// DatasetBaseURL is the content-delivery base for the election data
	// repository (candidates, races, news config, state financials).
	DatasetBaseURL string
	// OpenFEC federal campaign-finance API.
	OpenFECBaseURL string
	OpenFECAPIKey  string
	// RSSProxyURL points at an external RSS-to-JSON deployment; when empty,
	// feeds are fetched and parsed in-process.
	RSSProxyURL string
	// State and election cycle the deployment covers.
	State string
	Cycle int
	// HTTPTimeout bounds every upstream request.
	HTTPTimeout time.Duration
}

// CacheConfig carries the freshness windows applied at read time.
type CacheConfig struct {
	// DataTTL covers dataset documents (candidates, races, metadata).
	DataTTL time.Duration
	// RSSTTL covers fetched feeds, which update more frequently.
	RSSTTL time.Duration
	// APITTL covers finance API responses (OpenFEC, state financials).
	APITTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "*"),
			Environment:    getEnv("ENVIRONMENT", "development"),
		},
		Redis: RedisConfig{
			Enabled:      getBoolEnv("REDIS_ENABLED", true),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			Namespace:    getEnv("REDIS_NAMESPACE", "electioncache"),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Sources: SourcesConfig{
			DatasetBaseURL: getEnv("DATASET_BASE_URL", "https://raw.githubusercontent.com/CJohnson0228/georgia-2026-election-data/main"),
			OpenFECBaseURL: getEnv("OPENFEC_BASE_URL", "https://api.open.fec.gov/v1"),
			OpenFECAPIKey:  getEnvRequired("OPENFEC_API_KEY"),
			RSSProxyURL:    getEnv("RSS_PROXY_URL", ""),
			State:          getEnv("ELECTION_STATE", "GA"),
			Cycle:          getIntEnv("ELECTION_CYCLE", 2026),
			HTTPTimeout:    getDurationEnv("SOURCES_HTTP_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			DataTTL: getDurationEnv("CACHE_DATA_TTL", time.Hour),
			RSSTTL:  getDurationEnv("CACHE_RSS_TTL", 30*time.Minute),
			APITTL:  getDurationEnv("CACHE_API_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatEnv("RATE_LIMIT_RPS", 20),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 40),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func splitEnv(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
