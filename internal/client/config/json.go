package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/carpark/internal/flagx"
	"github.com/dmitrijs2005/carpark/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations go
// through timex.Duration so they may be written as "4s" or as nanoseconds.
type JsonConfig struct {
	ServerURL     string         `json:"server_url"`
	DatabasePath  string         `json:"database_path"`
	ToastDuration timex.Duration `json:"toast_duration"`
	LogLevel      string         `json:"log_level"`
	LogBackend    string         `json:"log_backend"`
	HistoryFile   string         `json:"history_file"`
	Timezone      string         `json:"timezone"`
}

// parseJson overlays Config with the fields present in the JSON file named by
// -c or -config. Without that flag nothing happens. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(jc.ServerURL, &cfg.ServerURL)
	overlay(jc.DatabasePath, &cfg.DatabasePath)
	overlay(jc.LogLevel, &cfg.LogLevel)
	overlay(jc.LogBackend, &cfg.LogBackend)
	overlay(jc.HistoryFile, &cfg.HistoryFile)
	overlay(jc.Timezone, &cfg.Timezone)
	if jc.ToastDuration.Duration > 0 {
		cfg.ToastDuration = jc.ToastDuration.Duration
	}
}
