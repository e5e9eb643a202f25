package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	RedisURL      string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Cache TTLs
	AccountCacheTTL time.Duration
	BalanceCacheTTL time.Duration

	// Ledger write retry bound for transient database failures.
	TxMaxRetries int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "corebanking")
	viper.SetDefault("ACCOUNT_CACHE_TTL", "5m")
	viper.SetDefault("BALANCE_CACHE_TTL", "30s")
	viper.SetDefault("TX_MAX_RETRIES", 3)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL environment variable not set. Caching will be disabled.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "corebanking"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	accountTTLStr := viper.GetString("ACCOUNT_CACHE_TTL")
	accountTTL, err := time.ParseDuration(accountTTLStr)
	if err != nil {
		accountTTL = 5 * time.Minute
		if accountTTLStr != "" {
			log.Printf("Warning: Invalid value for ACCOUNT_CACHE_TTL ('%s'). Defaulting to %s.\n", accountTTLStr, accountTTL.String())
		}
	}

	balanceTTLStr := viper.GetString("BALANCE_CACHE_TTL")
	balanceTTL, err := time.ParseDuration(balanceTTLStr)
	if err != nil {
		balanceTTL = 30 * time.Second
		if balanceTTLStr != "" {
			log.Printf("Warning: Invalid value for BALANCE_CACHE_TTL ('%s'). Defaulting to %s.\n", balanceTTLStr, balanceTTL.String())
		}
	}

	txMaxRetries := viper.GetInt("TX_MAX_RETRIES")
	if txMaxRetries < 1 {
		txMaxRetries = 3
		log.Printf("Warning: TX_MAX_RETRIES must be at least 1. Defaulting to %d.\n", txMaxRetries)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTIssuer = jwtIssuer
	cfg.AccountCacheTTL = accountTTL
	cfg.BalanceCacheTTL = balanceTTL
	cfg.TxMaxRetries = txMaxRetries

	return cfg, nil
}
