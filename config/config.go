package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults applied when the corresponding environment variable is absent.
const (
	DefaultUploadsDir = "uploads"
	DefaultPort       = "4000"
	DefaultTLSPort    = "443"
)

// Config holds the full application configuration. It is loaded once in main
// and passed explicitly into every component; business logic must never read
// process environment on its own.
type Config struct {
	Env   string
	Debug bool

	// Telegram ingestion.
	BotToken   string
	ChatID     int64
	NewsTag    string
	StoriesTag string

	// HTTP server. When both TLSCert and TLSKey are set the server listens
	// with TLS on TLSPort, otherwise plaintext on Port.
	Port    string
	TLSPort string
	TLSCert string
	TLSKey  string

	// Media storage. S3Bucket switches the file store from local disk to S3;
	// S3URLPrefix is the public base URL media keys are appended to.
	UploadsDir  string
	S3Bucket    string
	S3Region    string
	S3URLPrefix string

	// Database.
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	SentryDSN string
}

// Load reads configuration from environment variables. Call dotenv.LoadDotEnvs
// beforehand so .env files are taken into account.
func Load() (*Config, error) {
	debug, _ := strconv.ParseBool(getEnv("DEBUG", "false"))

	var chatID int64
	if raw := getEnv("CHAT_ID", ""); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAT_ID %q: %w", raw, err)
		}
		chatID = parsed
	}

	cfg := &Config{
		Env:         getEnv("KCHR_ENV", "dev"),
		Debug:       debug,
		BotToken:    getEnv("BOT_TOKEN", ""),
		ChatID:      chatID,
		NewsTag:     getEnv("TAG_NAME", ""),
		StoriesTag:  getEnv("TAG_STORIES", ""),
		Port:        getEnv("PORT", DefaultPort),
		TLSPort:     getEnv("TLS_PORT", DefaultTLSPort),
		TLSCert:     getEnv("SSL_CERT", ""),
		TLSKey:      getEnv("SSL_KEY", ""),
		UploadsDir:  getEnv("UPLOADS_DIR", DefaultUploadsDir),
		S3Bucket:    getEnv("UPLOADS_S3_BUCKET", ""),
		S3Region:    getEnv("UPLOADS_S3_REGION", "us-west-1"),
		S3URLPrefix: getEnv("UPLOADS_S3_URL_PREFIX", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", ""),
		DBPass:      getEnv("DB_PASS", ""),
		DBName:      getEnv("DB_NAME", ""),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.NewsTag == "" {
		return nil, fmt.Errorf("TAG_NAME is required")
	}
	if cfg.StoriesTag == "" {
		return nil, fmt.Errorf("TAG_STORIES is required")
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}

	return cfg, nil
}

// TLSEnabled reports whether the server should terminate TLS itself.
func (c *Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// DSN builds the postgres connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
