package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Avatar storage providers.
const (
	StorageDisk  = "disk"
	StorageS3    = "s3"
	StorageMinio = "minio"
)

// ServerConfiguration holds the HTTP server settings.
type ServerConfiguration struct {
	Addr        string
	Environment string
	LogLevel    string
}

// DatabaseConfiguration holds the postgres settings.
type DatabaseConfiguration struct {
	DSN            string
	MigrationsPath string
	MaxOpenConns   int
	MaxIdleConns   int
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Enabled reports whether a redis host was configured.
func (r RedisConfiguration) Enabled() bool {
	return r.Host != ""
}

// BucketConfiguration holds where the avatars are written to.
type BucketConfiguration struct {
	Provider     string
	UploadDir    string
	Endpoint     string
	Region       string
	AccessKey    string
	AccessSecret string
	Bucket       string
	PublicURL    string
	Secure       bool
}

// SchedulerConfiguration holds the background jobs settings.
type SchedulerConfiguration struct {
	SweepHour uint
}

type Config struct {
	Server    ServerConfiguration
	Database  DatabaseConfiguration
	Redis     RedisConfiguration
	Bucket    BucketConfiguration
	Scheduler SchedulerConfiguration
}

// Load the variables.
// The .env file is only read when not running on Docker.
func Load() (*Config, error) {
	environment := getenv("ENVIRONMENT", "development")
	if environment != "docker" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("couldn't load the .env file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfiguration{
			Addr:        getenv("HTTP_ADDR", ":8080"),
			Environment: environment,
			LogLevel:    getenv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfiguration{
			DSN:            getenv("DATABASE_DSN", ""),
			MigrationsPath: getenv("DATABASE_MIGRATIONS_PATH", "migrations"),
			MaxOpenConns:   getenvInt("DATABASE_MAX_OPEN_CONNS", 50),
			MaxIdleConns:   getenvInt("DATABASE_MAX_IDLE_CONNS", 10),
		},
		Redis: RedisConfiguration{
			Host:     getenv("REDIS_HOST", ""),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: getenv("REDIS_PASSWORD", ""),
		},
		Bucket: BucketConfiguration{
			Provider:     strings.ToLower(getenv("AVATAR_STORAGE", StorageDisk)),
			UploadDir:    getenv("AVATAR_UPLOAD_DIR", "uploads"),
			Endpoint:     getenv("BUCKET_ENDPOINT", ""),
			Region:       getenv("BUCKET_REGION", "us-east-1"),
			AccessKey:    getenv("BUCKET_ACCESS_KEY", ""),
			AccessSecret: getenv("BUCKET_ACCESS_SECRET", ""),
			Bucket:       getenv("BUCKET_NAME", "avatars"),
			PublicURL:    strings.TrimSuffix(getenv("BUCKET_PUBLIC_URL", ""), "/"),
			Secure:       getenvBool("BUCKET_SECURE", true),
		},
		Scheduler: SchedulerConfiguration{
			SweepHour: uint(getenvInt("SWEEP_HOUR", 4)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the settings that have no usable default.
func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return errors.New("DATABASE_DSN is required")
	}

	switch c.Bucket.Provider {
	case StorageDisk:
	case StorageS3, StorageMinio:
		if c.Bucket.Endpoint == "" || c.Bucket.PublicURL == "" {
			return fmt.Errorf("BUCKET_ENDPOINT and BUCKET_PUBLIC_URL are required for the %s avatar storage", c.Bucket.Provider)
		}
	default:
		return fmt.Errorf("unsupported avatar storage %q", c.Bucket.Provider)
	}

	if c.Scheduler.SweepHour > 23 {
		return fmt.Errorf("SWEEP_HOUR must be between 0 and 23, got %d", c.Scheduler.SweepHour)
	}

	return nil
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
