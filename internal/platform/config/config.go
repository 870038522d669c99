package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is loaded once in main and
// passed down explicitly; nothing reads environment variables afterwards.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Telegram
	BotToken        string
	AdminIDs        []int64
	AdminInviteCode string

	// Session tokens
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, ulule/limiter format, e.g. "100-M"
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BOT_TOKEN", "")
	viper.SetDefault("ADMIN_IDS", "")
	viper.SetDefault("ADMIN_INVITE_CODE", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "ipledger")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.BotToken = viper.GetString("BOT_TOKEN")
	if cfg.BotToken == "" {
		log.Println("Warning: BOT_TOKEN not set. Telegram auth and the bot adapter will not function.")
	}

	cfg.AdminIDs = parseAdminIDs(viper.GetString("ADMIN_IDS"))
	cfg.AdminInviteCode = viper.GetString("ADMIN_INVITE_CODE")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	expiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		expiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", expiryStr, expiry)
	}
	cfg.JWTExpiryDuration = expiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

// parseAdminIDs parses a comma separated list of Telegram ids, skipping
// anything that is not a number.
func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("Warning: Ignoring invalid admin id %q in ADMIN_IDS.\n", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
