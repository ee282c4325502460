package config

import (
	"os"
	"strconv"
	"time"

	"github.com/docshare/filesystem/internal/models"
	"gopkg.in/ini.v1"
)

type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Content ContentConfig
}

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type ServerConfig struct {
	Port            string
	BodyLimit       int
	ShutdownTimeout time.Duration
	LogLevel        string
}

type ContentConfig struct {
	RootName       string
	DefaultMaxRows int
}

// Load builds the configuration from environment variables. When
// CONTENT_CONFIG_FILE names an INI file its values replace the built-in
// defaults; environment variables still take precedence.
func Load() *Config {
	file := loadFile(os.Getenv("CONTENT_CONFIG_FILE"))

	return &Config{
		DB: DBConfig{
			Driver:     getEnv("DB_DRIVER", file.get("database", "driver", "postgres")),
			Host:       getEnv("DB_HOST", file.get("database", "host", "localhost")),
			Port:       getEnv("DB_PORT", file.get("database", "port", "5432")),
			User:       getEnv("DB_USER", file.get("database", "user", "filesystem")),
			Password:   getEnv("DB_PASSWORD", file.get("database", "password", "filesystem_secret")),
			Name:       getEnv("DB_NAME", file.get("database", "name", "filesystem")),
			SSLMode:    getEnv("DB_SSLMODE", file.get("database", "sslmode", "disable")),
			SQLitePath: getEnv("DB_SQLITE_PATH", file.get("database", "sqlite_path", "filesystem.db")),
		},
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", file.get("server", "port", "8080")),
			BodyLimit:       getEnvAsInt("SERVER_BODY_LIMIT", file.getInt("server", "body_limit", 1024*1024)),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", file.getDuration("server", "shutdown_timeout", 10*time.Second)),
			LogLevel:        getEnv("LOG_LEVEL", file.get("server", "log_level", "info")),
		},
		Content: ContentConfig{
			RootName:       getEnv("CONTENT_ROOT_NAME", file.get("content", "root_name", models.RootName)),
			DefaultMaxRows: getEnvAsInt("CONTENT_DEFAULT_MAX_ROWS", file.getInt("content", "default_max_rows", models.DefaultMaxRows)),
		},
	}
}

type fileValues struct {
	cfg *ini.File
}

func loadFile(path string) fileValues {
	if path == "" {
		return fileValues{}
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return fileValues{}
	}
	return fileValues{cfg: cfg}
}

func (f fileValues) get(section, key, fallback string) string {
	if f.cfg == nil || !f.cfg.Section(section).HasKey(key) {
		return fallback
	}
	return f.cfg.Section(section).Key(key).String()
}

func (f fileValues) getInt(section, key string, fallback int) int {
	if f.cfg == nil {
		return fallback
	}
	return f.cfg.Section(section).Key(key).MustInt(fallback)
}

func (f fileValues) getDuration(section, key string, fallback time.Duration) time.Duration {
	if f.cfg == nil {
		return fallback
	}
	return f.cfg.Section(section).Key(key).MustDuration(fallback)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
