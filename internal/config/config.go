package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageS3     = "s3"
	StorageGridFS = "gridfs"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port        string
	GinMode     string
	LogLevel    slog.Level
	DatabaseURL string

	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	RedisConnStr  string
	PublicBaseURL string

	StorageBackend string
	S3Bucket       string
	S3Region       string
	MongoURI       string
	MongoDatabase  string

	OtelEndpoint string

	// CORSAllowedOrigins lists the browser origins allowed to call the API. "*" allows any.
	CORSAllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "release"),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://sharebnb.db"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		RedisConnStr:   os.Getenv("REDIS_CONNSTRING"),
		PublicBaseURL:  strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageS3),
		S3Bucket:       getEnv("S3_BUCKET", "sharebnb-dnd"),
		S3Region:       getEnv("S3_REGION", "us-east-2"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "sharebnb"),
		OtelEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRES", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRES: %w", err)
	}
	cfg.TokenTTL = ttl

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	cfg.BcryptCost = cost

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.StorageBackend {
	case StorageS3, StorageGridFS:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
