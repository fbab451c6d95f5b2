// Package config loads runtime configuration for the carpark CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: CARPARK_* variables, optionally seeded from a .env file
//     in the working directory (joho/godotenv).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server base URL
//	-d string   local database path
//	-t int      notification duration (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "database_path": "carpark.db",
//	  "toast_duration": "4s",
//	  "log_level": "info",
//	  "log_backend": "zap",
//	  "history_file": ".carpark_history",
//	  "timezone": "Asia/Bangkok"
//	}
//
// Malformed input in any source panics, as configuration is read once at
// startup.
package config
