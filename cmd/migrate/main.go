// Command migrate runs the versioned SQL migrations for the backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"campushub/internal/config"
	"campushub/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|down|status|version|redo|reset> [args]")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.DBDriver == config.DriverMongo {
		return fmt.Errorf("migrations apply to SQL drivers only; mongo indexes are ensured at startup")
	}

	dialector, err := database.Dialector(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := database.Open(ctx, dialector)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "up", "down", "status", "version", "redo", "reset":
	default:
		return usage()
	}

	if err := database.Migrate(ctx, db, cmd, flag.Args()[1:]...); err != nil {
		return fmt.Errorf("migrate %s failed: %w", cmd, err)
	}
	log.Printf("migrate %s finished", cmd)
	return nil
}
