package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/stwalsh4118/room4rent/internal/config"
	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/logger"
)

func main() {
	env := flag.String("env", "development", "Logging environment (development, production)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log := logger.New(*env)

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal("Failed to load configuration", err, nil)
	}

	m, err := database.NewMigrator(cfg.DSN(), log)
	if err != nil {
		log.Fatal("Failed to create migrator", err, map[string]interface{}{
			"host": cfg.Host,
			"name": cfg.Name,
		})
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", err, nil)
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", err, nil)
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", err, nil)
		}
		if version == 0 {
			log.Info("No migrations applied", nil)
			return
		}
		log.Info("Current migration version", map[string]interface{}{
			"version": version,
			"dirty":   dirty,
		})

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>", nil, nil)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", err, map[string]interface{}{"value": args[1]})
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", err, nil)
		}

	default:
		log.Error("Unknown command", nil, map[string]interface{}{"command": command})
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Room4Rent database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                Apply all pending migrations
  down              Roll back all migrations
  version           Show current migration version
  force <version>   Force set migration version after a failed run

Flags:
  -env string       Logging environment (default: development)

Environment Variables:
  DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD`)
}
