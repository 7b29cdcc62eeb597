package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/gatekit/gatekit/internal/auth/app"
)

func main() {
	// Optional .env in the working directory; real env vars win.
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	if err := parseFlags(&cfg, os.Args[1:]); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

// parseFlags lets command line flags override the environment config.
func parseFlags(cfg *app.Config, args []string) error {
	fs := pflag.NewFlagSet("gatekit", pflag.ContinueOnError)

	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP server port")
	fs.StringVarP(&cfg.DatabaseDriver, "driver", "d", cfg.DatabaseDriver, "Store driver (sqlite, memory)")
	fs.StringVarP(&cfg.DatabaseFile, "database", "f", cfg.DatabaseFile, "SQLite database file")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, text)")
	fs.StringVarP(&cfg.Env, "environment", "e", cfg.Env, "Environment (dev, staging, prod)")

	return fs.Parse(args)
}
