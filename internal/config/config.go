package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Product sources
const (
	ProductSourceJSON     = "json"
	ProductSourceSQLite   = "sqlite"
	ProductSourcePostgres = "postgres"
)

// Context stores
const (
	ContextStoreMemory = "memory"
	ContextStoreRedis  = "redis"
)

// Generator modes
const (
	GeneratorModeCanned   = "canned"
	GeneratorModeGenerate = "generate"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	PostgreSQL PostgreSQLConfig
	Context    ContextConfig
	Redis      RedisConfig
	Generator  GeneratorConfig
	Logging    LoggingConfig
	Responses  ResponseConfig

	// Warnings lists values that were invalid and replaced by defaults.
	// They are collected here because the logger is built from this config.
	Warnings []string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	WebDir         string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// CatalogConfig describes where intents and products are loaded from
type CatalogConfig struct {
	TrainingFile  string // JSON file with "intents" and optionally "products"
	ProductSource string // json, sqlite or postgres
	SQLitePath    string
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ContextConfig holds rolling context window configuration
type ContextConfig struct {
	WindowSize  int
	Store       string
	TTL         time.Duration
	MaxSessions int // in-memory store only, 0 removes the cap
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// GeneratorConfig holds the OpenAI-compatible fallback generator configuration
type GeneratorConfig struct {
	APIKey          string
	APIBase         string
	ChatModel       string
	ChatTemperature float64
	ChatTopP        float64
	ChatExtraBody   string // JSON string merged into the request as extra_body
	Timeout         int    // HTTP client timeout in seconds
	Enabled         bool

	Mode           string
	MaxNewTokens   int
	Truncation     bool
	MaxPromptChars int

	RefreshInterval    time.Duration // how long an acquired model handle stays fresh
	PingOnAcquire      bool
	RequestTimeout     time.Duration
	RateLimit          float64 // requests per second, 0 disables
	RateBurst          int
	BreakerMaxFailures int
	BreakerOpenTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ResponseConfig holds response selection configuration
type ResponseConfig struct {
	Seed int64 // 0 seeds from the clock
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	env := &envReader{}

	apiKey := env.getEnv("OPENAI_API_KEY", "")
	defaultMode := GeneratorModeCanned
	if apiKey != "" {
		defaultMode = GeneratorModeGenerate
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           env.getEnvAsInt("SERVER_PORT", 5000),
			Host:           env.getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        env.getEnv("GIN_MODE", "release"),
			WebDir:         env.getEnv("WEB_DIR", "cmd/server/web"),
			AllowedOrigins: env.getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: env.getEnv("CORS_ALLOWED_METHODS", "GET,POST,DELETE,OPTIONS"),
			AllowedHeaders: env.getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Catalog: CatalogConfig{
			TrainingFile:  env.getEnv("CATALOG_TRAINING_FILE", "chatbot_training_data.json"),
			ProductSource: strings.ToLower(env.getEnv("CATALOG_PRODUCT_SOURCE", ProductSourceJSON)),
			SQLitePath:    env.getEnv("CATALOG_SQLITE_PATH", "products.db"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                env.getEnv("DATABASE_URL", env.getEnv("POSTGRESQL_URI", env.getEnv("PG_DSN", ""))),
			Host:               env.getEnv("PG_HOST", "localhost"),
			Port:               env.getEnvAsInt("PG_PORT", 5432),
			User:               env.getEnv("PG_USER", "postgres"),
			Password:           env.getEnv("PG_PASSWORD", ""),
			Database:           env.getEnv("PG_DATABASE", "petchat"),
			SSLMode:            env.getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     env.getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: env.getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Context: ContextConfig{
			WindowSize:  env.getEnvAsInt("CONTEXT_WINDOW_SIZE", 3),
			Store:       strings.ToLower(env.getEnv("CONTEXT_STORE", ContextStoreMemory)),
			TTL:         env.getEnvAsDuration("CONTEXT_TTL", 30*time.Minute),
			MaxSessions: env.getEnvAsInt("CONTEXT_MAX_SESSIONS", 10000),
		},
		Redis: RedisConfig{
			Addr:     env.getEnv("REDIS_ADDR", "localhost:6379"),
			Password: env.getEnv("REDIS_PASSWORD", ""),
			DB:       env.getEnvAsInt("REDIS_DB", 0),
			Prefix:   env.getEnv("REDIS_PREFIX", "petchat:ctx:"),
		},
		Generator: GeneratorConfig{
			APIKey:          apiKey,
			APIBase:         strings.TrimRight(env.getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"), "/"),
			ChatModel:       env.getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			ChatTemperature: env.getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.7),
			ChatTopP:        env.getEnvAsFloat("OPENAI_CHAT_TOP_P", 0.9),
			ChatExtraBody:   env.getEnv("OPENAI_CHAT_EXTRA_BODY", ""),
			Timeout:         env.getEnvAsInt("OPENAI_TIMEOUT", 30),
			Enabled:         apiKey != "",

			Mode:           strings.ToLower(env.getEnv("GENERATOR_MODE", defaultMode)),
			MaxNewTokens:   env.getEnvAsInt("GENERATOR_MAX_NEW_TOKENS", 150),
			Truncation:     env.getEnvAsBool("GENERATOR_TRUNCATION", true),
			MaxPromptChars: env.getEnvAsInt("GENERATOR_MAX_PROMPT_CHARS", 1024),

			RefreshInterval:    env.getEnvAsDuration("GENERATOR_REFRESH_INTERVAL", time.Hour),
			PingOnAcquire:      env.getEnvAsBool("GENERATOR_PING_ON_ACQUIRE", false),
			RequestTimeout:     env.getEnvAsDuration("GENERATOR_REQUEST_TIMEOUT", 20*time.Second),
			RateLimit:          env.getEnvAsFloat("GENERATOR_RATE_LIMIT", 2),
			RateBurst:          env.getEnvAsInt("GENERATOR_RATE_BURST", 4),
			BreakerMaxFailures: env.getEnvAsInt("GENERATOR_BREAKER_MAX_FAILURES", 3),
			BreakerOpenTimeout: env.getEnvAsDuration("GENERATOR_BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  env.getEnv("LOG_LEVEL", "info"),
			Format: env.getEnv("LOG_FORMAT", "json"),
		},
		Responses: ResponseConfig{
			Seed: int64(env.getEnvAsInt("RESPONSE_SEED", 0)),
		},
	}

	cfg.Warnings = env.warnings

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	switch c.Catalog.ProductSource {
	case ProductSourceJSON, ProductSourceSQLite, ProductSourcePostgres:
	default:
		return fmt.Errorf("invalid CATALOG_PRODUCT_SOURCE %q: must be one of json, sqlite, postgres", c.Catalog.ProductSource)
	}
	switch c.Context.Store {
	case ContextStoreMemory, ContextStoreRedis:
	default:
		return fmt.Errorf("invalid CONTEXT_STORE %q: must be memory or redis", c.Context.Store)
	}
	switch c.Generator.Mode {
	case GeneratorModeCanned, GeneratorModeGenerate:
	default:
		return fmt.Errorf("invalid GENERATOR_MODE %q: must be canned or generate", c.Generator.Mode)
	}
	if c.Context.WindowSize <= 0 {
		return fmt.Errorf("CONTEXT_WINDOW_SIZE must be positive, got %d", c.Context.WindowSize)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

// envReader reads typed environment values and remembers the invalid ones
type envReader struct {
	warnings []string
}

func (e *envReader) warn(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf(format, args...))
}

func (e *envReader) getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (e *envReader) getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		e.warn("invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func (e *envReader) getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		e.warn("invalid float value for %s, using default %g", key, defaultValue)
		return defaultValue
	}
	return value
}

func (e *envReader) getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		e.warn("invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func (e *envReader) getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		e.warn("invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
