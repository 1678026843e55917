package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // ANALYSIS_TIMEZONE must resolve in minimal containers

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/database"
	"github.com/joho/godotenv"
)

// Directory sources
const (
	DirectorySourceNone     = "none"
	DirectorySourceFile     = "file"
	DirectorySourcePostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Analysis  AnalysisConfig
	Directory DirectoryConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AnalysisConfig configures the punch-log engine.
type AnalysisConfig struct {
	RestDay       time.Weekday
	Locale        attendance.Locale
	Location      *time.Location
	TargetWorkday time.Duration
	MaxUploadMiB  int64
}

// MaxUploadBytes is the upload limit in bytes.
func (a AnalysisConfig) MaxUploadBytes() int64 {
	return a.MaxUploadMiB << 20
}

type DirectoryConfig struct {
	Source          string
	File            string
	CompanyID       string
	RefreshInterval time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

type StorageConfig struct {
	Type           string
	BasePath       string
	BaseURL        string
	ArchiveUploads bool
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using process environment", "error", err)
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the process environment only.
func FromEnv() (*Config, error) {
	config := &Config{}
	var errs []error

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid APP_PORT: %w", err))
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:3000"),
	}

	// Analysis configuration
	restDay, err := attendance.ParseWeekday(getEnv("ANALYSIS_REST_DAY", "friday"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid ANALYSIS_REST_DAY: %w", err))
	}
	locale, err := attendance.LocaleByCode(getEnv("ANALYSIS_LOCALE", "en"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid ANALYSIS_LOCALE: %w", err))
	}
	location, err := time.LoadLocation(getEnv("ANALYSIS_TIMEZONE", "UTC"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid ANALYSIS_TIMEZONE: %w", err))
	}
	targetWorkday, err := time.ParseDuration(getEnv("ANALYSIS_TARGET_WORKDAY", "8h"))
	if err != nil || targetWorkday <= 0 {
		errs = append(errs, fmt.Errorf("invalid ANALYSIS_TARGET_WORKDAY: must be a positive duration"))
	}
	maxUpload, err := strconv.ParseInt(getEnv("ANALYSIS_MAX_UPLOAD_MB", "20"), 10, 64)
	if err != nil || maxUpload <= 0 {
		errs = append(errs, fmt.Errorf("invalid ANALYSIS_MAX_UPLOAD_MB: must be a positive integer"))
	}

	config.Analysis = AnalysisConfig{
		RestDay:       restDay,
		Locale:        locale,
		Location:      location,
		TargetWorkday: targetWorkday,
		MaxUploadMiB:  maxUpload,
	}

	// Directory configuration
	refresh, err := time.ParseDuration(getEnv("DIRECTORY_REFRESH_INTERVAL", "5m"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid DIRECTORY_REFRESH_INTERVAL: %w", err))
	}

	config.Directory = DirectoryConfig{
		Source:          strings.ToLower(getEnv("DIRECTORY_SOURCE", DirectorySourceNone)),
		File:            getEnv("DIRECTORY_FILE", ""),
		CompanyID:       getEnv("DIRECTORY_COMPANY_ID", ""),
		RefreshInterval: refresh,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid DB_PORT: %w", err))
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// JWT configuration
	accessExp, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err))
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExp,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:           strings.ToLower(getEnv("STORAGE_TYPE", "local")),
		BasePath:       getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:        getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		ArchiveUploads: getEnvBool("ARCHIVE_UPLOADS", false),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	switch c.Directory.Source {
	case DirectorySourceNone:
	case DirectorySourceFile:
		if c.Directory.File == "" {
			return fmt.Errorf("DIRECTORY_FILE is required when DIRECTORY_SOURCE=file")
		}
	case DirectorySourcePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when DIRECTORY_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("DIRECTORY_SOURCE must be one of none, file, postgres")
	}
	if c.Directory.Source != DirectorySourceNone && c.Directory.RefreshInterval <= 0 {
		return fmt.Errorf("DIRECTORY_REFRESH_INTERVAL must be positive")
	}

	if c.Storage.Type != "local" {
		return fmt.Errorf("STORAGE_TYPE %q is not supported", c.Storage.Type)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return database.DSN(
		c.Database.Host,
		strconv.Itoa(c.Database.Port),
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}
