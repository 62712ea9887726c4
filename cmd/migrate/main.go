// migrate applies or rolls back the embedded SQL migrations: go run ./cmd/migrate -direction up.
package main

import (
	"flag"
	"fmt"
	"os"

	"mpesa-forms/backend/internal/config"
	"mpesa-forms/backend/internal/db/migrate"
	"mpesa-forms/backend/internal/logger"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	dir, err := migrate.ParseDirection(*direction)
	if err != nil {
		log.Fatal("invalid flag", "error", err)
	}
	version, err := migrate.Run(cfg.DatabaseURL, dir)
	if err != nil {
		log.Fatal("migrate failed", "direction", dir, "error", err)
	}
	log.Info("migrations applied", "direction", dir, "version", version)
}
