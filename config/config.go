package config

import (
	"os"
	"strconv"
	"time"

	sharedinfra "bikestore/internal/shared/infrastructure"
)

// Sources de données supportées
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Logger    sharedinfra.LoggerConfig
	Source    SourceConfig
	Postgres  sharedinfra.PostgresConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type SourceConfig struct {
	Kind   string
	CSVDir string
	Schema string
}

type DashboardConfig struct {
	TopLimit     int
	StaffLimit   int
	FactCacheTTL time.Duration
}

// LoadEnv construit la configuration depuis l'environnement
// Le fichier .env éventuel est chargé par l'appelant (godotenv).
func LoadEnv() *Config {
	appEnv := getEnv("APP_ENV", "development")
	return &Config{
		Server: ServerConfig{
			AppEnv:   appEnv,
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
		},
		Logger: sharedinfra.LoggerConfig{
			IsDevelopment:     appEnv == "development",
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Source: SourceConfig{
			Kind:   getEnv("SOURCE_KIND", SourceCSV),
			CSVDir: getEnv("SOURCE_CSV_DIR", "./data"),
			Schema: getEnv("SOURCE_DB_SCHEMA", ""),
		},
		Postgres: sharedinfra.PostgresConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "bikestore"),
			Password:        getEnv("DB_PASSWORD", "bikestore"),
			DBName:          getEnv("DB_NAME", "bikestore"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
		},
		Dashboard: DashboardConfig{
			TopLimit:     getEnvInt("DASHBOARD_TOP_LIMIT", 10),
			StaffLimit:   getEnvInt("DASHBOARD_STAFF_LIMIT", 8),
			FactCacheTTL: time.Duration(getEnvInt("FACT_CACHE_TTL_SECONDS", 0)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
