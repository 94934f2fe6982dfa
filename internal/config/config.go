package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	SecretKey     string // JWT signing key
	DatabaseURL   string
	RedisURL      string
	QuoteAPIURL   string        // upstream quote service base URL
	QuoteCacheTTL time.Duration // how long proxied quotes stay in Redis
	BcryptCost    int           // lowered to the bcrypt minimum under test
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3002"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	secret := viper.GetString("SECRET_KEY")
	if secret == "" {
		secret = "secret-dev"
	}

	quoteURL := viper.GetString("QUOTE_API_URL")
	if quoteURL == "" {
		quoteURL = "https://query1.finance.yahoo.com"
	}

	ttl := viper.GetDuration("QUOTE_CACHE_TTL")
	if ttl == 0 {
		ttl = time.Minute
	}

	// Speed up bcrypt during tests; the hash strength is not what is under test.
	cost := 12
	if env == "test" {
		cost = bcrypt.MinCost
	}

	return &Config{
		Env:           env,
		Port:          port,
		SecretKey:     secret,
		DatabaseURL:   dbURL,
		RedisURL:      viper.GetString("REDIS_URL"),
		QuoteAPIURL:   quoteURL,
		QuoteCacheTTL: ttl,
		BcryptCost:    cost,
	}, nil
}
