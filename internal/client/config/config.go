package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the carpark CLI.
//
// Fields:
//   - ServerURL: base URL of the carpark API server.
//   - DatabasePath: sqlite file for local settings (":memory:" disables persistence).
//   - ToastDuration: how long a notification stays visible.
//   - LogLevel / LogBackend: "debug".."error" and "slog" or "zap".
//   - HistoryFile: readline history; empty disables it.
//   - Timezone: IANA name used for daily invoices ("Local" for the host zone).
type Config struct {
	ServerURL     string
	DatabasePath  string
	ToastDuration time.Duration
	LogLevel      string
	LogBackend    string
	HistoryFile   string
	Timezone      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DatabasePath = "carpark.db"
	c.ToastDuration = 4 * time.Second
	c.LogLevel = "warn"
	c.LogBackend = "slog"
	c.HistoryFile = ".carpark_history"
	c.Timezone = "Local"
}

// Location resolves Timezone, falling back to the host zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), a JSON file and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env", os.LookupEnv)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
