package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT", "LOG_LEVEL", "LOG_FORMAT",
	"STORAGE_DRIVER", "STORAGE_FILE_PATH", "STORAGE_SLOT",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "GOOGLE_SHEET_RANGE",
	"MONGODB_URI", "MONGODB_DB_NAME",
	"MIRROR_CRON_SCHEDULE", "SUMMARY_CRON_SCHEDULE", "TIMEZONE",
	"NOTIFY_WEBHOOK_URL", "NOTIFY_TOKEN",
}

// clearEnv blanks every key so values from the host do not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "stock_items.json", cfg.Storage.FilePath)
	assert.Equal(t, "stockItems", cfg.Storage.Slot)
	assert.Equal(t, "Inventory!A:F", cfg.Sheets.Range)
	assert.Equal(t, "UTC", cfg.Schedule.Timezone)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.Notifier.Enabled())
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables already present, so drop the blanks set above.
	for _, key := range []string{"APP_PORT", "STORAGE_DRIVER", "MONGODB_URI"} {
		require.NoError(t, os.Unsetenv(key))
	}
	t.Cleanup(func() {
		for _, key := range []string{"APP_PORT", "STORAGE_DRIVER", "MONGODB_URI"} {
			_ = os.Unsetenv(key)
		}
	})

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nSTORAGE_DRIVER=mongodb\nMONGODB_URI=mongodb://localhost:27017\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverMongoDB, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Storage:  StorageConfig{Driver: DriverFile, FilePath: "items.json", Slot: "stockItems"},
		Sheets:   SheetsConfig{Range: "Inventory!A:F"},
		MongoDB:  MongoDBConfig{DBName: "stockroom"},
		Schedule: ScheduleConfig{Timezone: "UTC"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "memory driver", mutate: func(c *Config) { c.Storage.Driver = DriverMemory }},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }, wantErr: true},
		{name: "file driver without path", mutate: func(c *Config) { c.Storage.FilePath = "" }, wantErr: true},
		{name: "empty slot", mutate: func(c *Config) { c.Storage.Slot = "" }, wantErr: true},
		{name: "mongodb without uri", mutate: func(c *Config) { c.Storage.Driver = DriverMongoDB }, wantErr: true},
		{name: "sheets without id", mutate: func(c *Config) { c.Storage.Driver = DriverSheets }, wantErr: true},
		{name: "sheets with id", mutate: func(c *Config) {
			c.Storage.Driver = DriverSheets
			c.Sheets.SpreadsheetID = "abc"
		}},
		{name: "mirror without sheet", mutate: func(c *Config) { c.Schedule.MirrorCron = "0 * * * *" }, wantErr: true},
		{name: "summary without webhook", mutate: func(c *Config) { c.Schedule.SummaryCron = "0 8 * * *" }, wantErr: true},
		{name: "summary with webhook", mutate: func(c *Config) {
			c.Schedule.SummaryCron = "0 8 * * *"
			c.Notifier.WebhookURL = "https://hooks.example.com/x"
		}},
		{name: "bad timezone", mutate: func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
