package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends understood by the file store factory.
const (
	StorageLocal    = "local"
	StorageMinio    = "minio"
	StorageSupabase = "supabase"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string   `yaml:"port" env:"SERVER_PORT"`
		Mode            string   `yaml:"mode" env:"SERVER_MODE"`
		MaxUploadMB     int      `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`
		ShutdownTimeout string   `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
		AllowedOrigins  []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		MigrationsDir   string   `yaml:"migrations_dir" env:"SERVER_MIGRATIONS_DIR"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Redis struct {
		URL    string `yaml:"url" env:"REDIS_URL"`
		Prefix string `yaml:"prefix" env:"REDIS_PREFIX"`
	} `yaml:"redis"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		SessionDuration string `yaml:"session_duration" env:"JWT_SESSION_DURATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Storage struct {
		Backend string `yaml:"backend" env:"STORAGE_BACKEND"`
		Bucket  string `yaml:"bucket" env:"STORAGE_BUCKET"`

		Local struct {
			Path string `yaml:"path" env:"STORAGE_LOCAL_PATH"`
		} `yaml:"local"`

		Minio struct {
			Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
			AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
			UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
		} `yaml:"minio"`

		Supabase struct {
			URL string `yaml:"url" env:"SUPABASE_URL"`
			Key string `yaml:"key" env:"SUPABASE_KEY"`
		} `yaml:"supabase"`
	} `yaml:"storage"`

	Seed struct {
		ModeratorEmail    string `yaml:"moderator_email" env:"SEED_MODERATOR_EMAIL"`
		ModeratorUsername string `yaml:"moderator_username" env:"SEED_MODERATOR_USERNAME"`
		ModeratorPassword string `yaml:"moderator_password" env:"SEED_MODERATOR_PASSWORD"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.MaxUploadMB = 25
	config.Server.ShutdownTimeout = "10s"
	config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	config.Server.MigrationsDir = "migrations"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "pucknotes"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Redis.URL = "redis://localhost:6379/0"
	config.Redis.Prefix = "session:"

	config.JWT.SessionDuration = "168h"
	config.JWT.Issuer = "pucknotes"

	config.Storage.Backend = StorageLocal
	config.Storage.Bucket = "notes"
	config.Storage.Local.Path = "uploads"

	config.Seed.ModeratorEmail = "moderator@pucknotes.local"
	config.Seed.ModeratorUsername = "moderator"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.SessionDuration); err != nil {
		return fmt.Errorf("invalid JWT session duration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout format: %w", err)
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	switch strings.ToLower(config.Storage.Backend) {
	case StorageLocal:
		if config.Storage.Local.Path == "" {
			return fmt.Errorf("local storage path is required")
		}
	case StorageMinio:
		if config.Storage.Minio.Endpoint == "" {
			return fmt.Errorf("minio endpoint is required")
		}
		if config.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required")
		}
	case StorageSupabase:
		if config.Storage.Supabase.URL == "" || config.Storage.Supabase.Key == "" {
			return fmt.Errorf("supabase url and key are required")
		}
		if config.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// SessionDuration returns the parsed session lifetime. validateConfig guarantees it parses.
func (c *Config) SessionDuration() time.Duration {
	d, _ := time.ParseDuration(c.JWT.SessionDuration)
	return d
}

// ShutdownTimeout returns the parsed graceful shutdown window.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// MaxUploadBytes is the multipart memory limit handed to gin.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
