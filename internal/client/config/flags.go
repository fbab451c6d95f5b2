package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/carpark/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   server base URL
//	-d string   local database path
//	-t int      notification duration (seconds)
//	-l string   log level
//
// Only these flags are parsed; the rest of args is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("carpark", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	toast := fs.Int("t", int(cfg.ToastDuration.Seconds()), "notification duration (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.ToastDuration = time.Duration(*toast) * time.Second
		}
	})
}
