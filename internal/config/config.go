package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultSecretKey = "insecure-secret-key-change-me"

// Config holds everything the backend reads from the environment. It is
// built once at startup and passed to the collaborators that need it.
type Config struct {
	// DatabaseDSN is the path of the SQLite database file.
	DatabaseDSN string

	// FrontendURL is used to build shareable links like the add-expense URL.
	FrontendURL string

	// CORSAllowOrigins are glob patterns for allowed CORS origins.
	CORSAllowOrigins []string

	// SecretKey signs the JWT access tokens.
	SecretKey     string
	TokenLifetime time.Duration

	// AnthropicAPIKey enables the AI text parser. When empty, SMS parsing
	// uses the heuristic parser only and voice parsing is unavailable.
	AnthropicAPIKey string
	ParseTimeout    time.Duration

	// EnablePprof mounts the pprof handlers under /debug/pprof.
	EnablePprof bool

	SMTP      SMTP
	Splitwise Splitwise
}

// SMTP configures the outgoing mailer. Mail features are disabled when
// Host, User or Password are empty.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// Splitwise holds the OAuth2 client credentials for the Splitwise sync.
type Splitwise struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	// A missing .env file is fine, the environment is authoritative anyway
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseDSN:      getEnv("DATABASE_PATH", "data/gorm.db"),
		FrontendURL:      strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		SecretKey:        getEnv("SECRET_KEY", defaultSecretKey),
		TokenLifetime:    time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		ParseTimeout:     time.Duration(getEnvInt("PARSE_TIMEOUT_SECONDS", 30)) * time.Second,
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("FROM_EMAIL", os.Getenv("SMTP_USER")),
			FromName: getEnv("FROM_NAME", "Expense Tracker"),
		},
		Splitwise: Splitwise{
			ClientID:     os.Getenv("SPLITWISE_CLIENT_ID"),
			ClientSecret: os.Getenv("SPLITWISE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("SPLITWISE_REDIRECT_URL"),
		},
	}

	if cfg.SecretKey == defaultSecretKey {
		log.Warn().Msg("SECRET_KEY is not set, using an insecure default. Do not run this in production.")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("variable", key).Str("value", value).Msg("not a number, using default")
		return fallback
	}

	return parsed
}
