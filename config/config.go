package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	HTTP     HTTPConfig
	Storage  StorageConfig
	Log      LogConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	MaxConns int32
}

// DSN returns the pgx connection string.
func (c DBConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.Database
}

type TelegramConfig struct {
	Token string
}

type HTTPConfig struct {
	Addr          string
	PublicBaseURL string // prefix for file URLs returned by the list endpoint
}

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

type StorageConfig struct {
	Backend     string
	MaxUploadMB int64
}

type LogConfig struct {
	Level     string
	Format    string // "text" or "json"
	File      string // empty = stdout only
	MaxSizeMB int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNS", "4"))
	maxUpload, _ := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "32"), 10, 64)
	if maxUpload <= 0 {
		maxUpload = 32
	}
	logSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE_MB", "50"))
	if logSize <= 0 {
		logSize = 50
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "dinein"),
			MaxConns: int32(maxConns),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		HTTP: HTTPConfig{
			Addr:          getEnv("HTTP_ADDR", ":8080"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendPostgres)),
			MaxUploadMB: maxUpload,
		},
		Log: LogConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
			File:      getEnv("LOG_FILE", ""),
			MaxSizeMB: logSize,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
