package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Environment string
	ServerPort  string

	DBDriver    string
	DatabaseURL string

	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	// Rate limiting (enabled only when RedisURL is set)
	RedisURL             string
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration

	CORSAllowedOrigins []string
	MetricsEnabled     bool
	OTLPEndpoint       string
	LogFile            string

	// Seed tool
	AdminName      string
	AdminEmail     string
	AdminPassword  string
	AdminAddress   string
	SeedSampleData bool
}

func Load() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	// (Docker containers use environment variables directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", EnvDevelopment),
		ServerPort:  getEnv("SERVER_PORT", ":5000"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTExpiry:  getEnvAsDuration("JWT_EXPIRY", "24h"),
		BcryptCost: getEnvAsInt("BCRYPT_COST", 10),

		RedisURL:             os.Getenv("REDIS_URL"),
		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogFile:            os.Getenv("LOG_FILE"),

		AdminName:      getEnv("ADMIN_NAME", "System Administrator"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@storeapp.com"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminAddress:   getEnv("ADMIN_ADDRESS", "System Address"),
		SeedSampleData: getEnvAsBool("SEED_SAMPLE_DATA", false),
	}
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate reports the first configuration value the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" && c.IsProduction() {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.RedisURL != "" && (c.RateLimitMaxRequests <= 0 || c.RateLimitWindow <= 0) {
		return errors.New("rate limit requires positive RATE_LIMIT_MAX_REQUESTS and RATE_LIMIT_WINDOW")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getEnvAsInt retrieves environment variable as int with default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %t", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string, defaultVal []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
