package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

type Config struct {
	App      AppConfig
	Sheets   SheetsConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Store    StoreConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	AdminJWTSecret     string
}

type SheetsConfig struct {
	SpreadsheetID string
	APIKey        string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// StoreConfig holds the storefront settings: which worksheets act as
// catalog sources, the attribute order of the narrowing dialogue and where
// completed leads go.
type StoreConfig struct {
	Sources      []string
	Schema       catalog.Schema
	ManagerEmail string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: getEnv("SPREADSHEET_ID", ""),
			APIKey:        getEnv("SHEETS_API_KEY", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ChooseApple Bot"),
		},
		Store: StoreConfig{
			Sources:      getEnvAsList("CATALOG_SOURCES", []string{"iPhone", "MacBook", "iPad"}),
			Schema:       catalog.Schema(getEnvAsList("ATTRIBUTE_SCHEMA", catalog.DefaultSchema)),
			ManagerEmail: getEnv("MANAGER_EMAIL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
