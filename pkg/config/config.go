package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// JWTIssuer, when set, is enforced against the iss claim of every
	// incoming token.
	JWTIssuer string

	// Maximum row-lock wait applied per transaction via SET LOCAL lock_timeout.
	LockTimeout time.Duration

	// Redis snapshot cache for the aggregate ledger. Empty address disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Requests per minute per client IP.
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "retail-backoffice-app")
	viper.SetDefault("LOCK_TIMEOUT", "3s")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	lockTimeoutStr := viper.GetString("LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil || lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockTimeoutStr, lockTimeout.String())
	}
	cfg.LockTimeout = lockTimeout

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Aggregate ledger snapshot caching is disabled.")
	}

	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 300
	}

	return cfg, nil
}
