package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"anoa.com/marketplace/pkg/database"
	"anoa.com/marketplace/pkg/storage"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string
	LogLevel       string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string
	RedisURL    string

	JWTSecret       string
	JWTTTL          time.Duration
	SessionCookie   string
	TokenQueryParam string

	CloudinaryURL          string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	UploadConcurrency      int

	CartMergeLines  bool
	ReviewCooldown  time.Duration
	CheckoutLockTTL time.Duration

	KafkaBrokers     []string
	OrderEventsTopic string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		LogLevel:       os.Getenv("LOG_LEVEL"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      os.Getenv("DB_PASS"),
		DBName:      getEnv("DB_NAME", "marketplace"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionCookie:   getEnv("SESSION_COOKIE", "token"),
		TokenQueryParam: getEnv("TOKEN_QUERY_PARAM", "token"),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "marketplace"),

		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "orders.placed"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "change-me"
	}

	var err error
	if cfg.JWTTTL, err = parseDuration("JWT_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.ReviewCooldown, err = parseDuration("REVIEW_COOLDOWN", "30s"); err != nil {
		return nil, err
	}
	if cfg.CheckoutLockTTL, err = parseDuration("CHECKOUT_LOCK_TTL", "15s"); err != nil {
		return nil, err
	}

	concurrency, err := strconv.Atoi(getEnv("UPLOAD_CONCURRENCY", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_CONCURRENCY: %w", err)
	}
	cfg.UploadConcurrency = min(max(concurrency, 1), storage.MaxParallelUploads)

	cfg.CartMergeLines, err = strconv.ParseBool(getEnv("CART_MERGE_LINES", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid CART_MERGE_LINES: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Database() database.Config {
	return database.Config{
		DSN:     database.BuildDSN(c.DatabaseURL, c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName),
		Verbose: c.AppEnv == "development",
	}
}

func (c *Config) Cloudinary() storage.CloudinaryConfig {
	return storage.CloudinaryConfig{
		URL:       c.CloudinaryURL,
		CloudName: c.CloudinaryCloudName,
		APIKey:    c.CloudinaryAPIKey,
		APISecret: c.CloudinaryAPISecret,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
