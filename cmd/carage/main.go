package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vodintech/caragecarcare/internal/app"
	"github.com/vodintech/caragecarcare/internal/config"
	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/pkg/catalog"
)

var (
	version = "dev"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	dbPath := flag.String("db", "", "SQLite database path (overrides DB_PATH)")
	logLevel := flag.String("loglevel", "", "Log level (debug, info, warn, error)")
	catalogURL := flag.String("catalog", "", "Catalog gateway base URL (overrides CATALOG_URL)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Carage - Car Care Booking Service

Usage:
  carage [options]

Options:
  -addr string     HTTP listen address (default ":8081")
  -db string       SQLite database path (default "carage.db")
  -loglevel str    Log level: debug, info, warn, error (default "info")
  -catalog string  Catalog gateway base URL (default "http://localhost:8000")
  -version         Show version and exit
  -help            Show this help message

Environment:
  HTTP_ADDR, DB_PATH, LOG_LEVEL, CATALOG_URL, CATALOG_TIMEOUT,
  OTP_COUNTDOWN_SECONDS, YEAR_STEP_ENABLED, SESSION_MAX_AGE
  (a .env file in the working directory is loaded if present)

Examples:
  carage                                # Run with defaults
  carage -addr :8080                    # Run on port 8080
  carage -db /data/carage.db            # Use custom database path
  carage -catalog http://catalog:8000   # Point at a remote gateway

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("carage %s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *catalogURL != "" {
		cfg.CatalogBaseURL = *catalogURL
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	client := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, appLog)

	a, err := app.New(appLog, cfg, client)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	if err := a.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
