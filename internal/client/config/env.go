package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvServerURL     = "CARPARK_SERVER_URL"
	EnvDatabasePath  = "CARPARK_DB_PATH"
	EnvToastDuration = "CARPARK_TOAST_DURATION"
	EnvLogLevel      = "CARPARK_LOG_LEVEL"
	EnvLogBackend    = "CARPARK_LOG_BACKEND"
	EnvHistoryFile   = "CARPARK_HISTORY_FILE"
	EnvTimezone      = "CARPARK_TIMEZONE"
)

// parseEnv overlays Config with CARPARK_* variables. dotenv, when it exists,
// is loaded first; variables already set in the process environment win over
// the file. Panics on an unreadable dotenv file or a malformed duration.
func parseEnv(cfg *Config, dotenv string, lookup func(string) (string, bool)) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvServerURL, &cfg.ServerURL)
	str(EnvDatabasePath, &cfg.DatabasePath)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvLogBackend, &cfg.LogBackend)
	str(EnvHistoryFile, &cfg.HistoryFile)
	str(EnvTimezone, &cfg.Timezone)

	if v, ok := lookup(EnvToastDuration); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ToastDuration = d
	}
}
