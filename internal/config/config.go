package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverFile    = "file"
	DriverMemory  = "memory"
	DriverMongoDB = "mongodb"
	DriverSheets  = "sheets"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Sheets   SheetsConfig
	MongoDB  MongoDBConfig
	Schedule ScheduleConfig
	Notifier NotifierConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig selects where the inventory slot lives.
type StorageConfig struct {
	Driver   string
	FilePath string
	Slot     string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether a spreadsheet is configured.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ScheduleConfig holds cron expressions for background jobs. Empty disables a job.
type ScheduleConfig struct {
	MirrorCron  string
	SummaryCron string
	Timezone    string
}

// NotifierConfig holds the webhook the stock summary is pushed to.
type NotifierConfig struct {
	WebhookURL string
	Token      string
}

// Enabled reports whether a webhook is configured.
func (c NotifierConfig) Enabled() bool {
	return c.WebhookURL != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "json"),
		},
		Storage: StorageConfig{
			Driver:   getenvWithDefault("STORAGE_DRIVER", DriverFile),
			FilePath: getenvWithDefault("STORAGE_FILE_PATH", "stock_items.json"),
			Slot:     getenvWithDefault("STORAGE_SLOT", "stockItems"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Inventory!A:F"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stockroom"),
		},
		Schedule: ScheduleConfig{
			MirrorCron:  os.Getenv("MIRROR_CRON_SCHEDULE"),
			SummaryCron: os.Getenv("SUMMARY_CRON_SCHEDULE"),
			Timezone:    getenvWithDefault("TIMEZONE", "UTC"),
		},
		Notifier: NotifierConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			Token:      os.Getenv("NOTIFY_TOKEN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}

	if c.Storage.Slot == "" {
		return errors.New("STORAGE_SLOT must not be empty")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.FilePath == "" {
			return errors.New("STORAGE_FILE_PATH must be provided")
		}
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	case DriverSheets:
		if !c.Sheets.Enabled() {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Sheets.Enabled() && c.Sheets.Range == "" {
		return errors.New("GOOGLE_SHEET_RANGE must not be empty")
	}

	if c.Schedule.MirrorCron != "" && !c.Sheets.Enabled() {
		return errors.New("MIRROR_CRON_SCHEDULE requires GOOGLE_SHEET_DATABASE_ID")
	}

	if c.Schedule.SummaryCron != "" && !c.Notifier.Enabled() {
		return errors.New("SUMMARY_CRON_SCHEDULE requires NOTIFY_WEBHOOK_URL")
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Schedule.Timezone, err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
