// Command maintenance runs the saved-posts reconciliation sweep outside the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"campushub/internal/bootstrap"
	"campushub/internal/config"
	"campushub/internal/service"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "List dangling saved-post references without removing them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SkipRedis: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = rt.Close(context.Background()) }()

	saved := service.NewSavedService(rt.Users, rt.Posts)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *dryRun {
		sets, err := saved.Dangling(ctx)
		if err != nil {
			log.Fatalf("Listing dangling references failed: %v", err)
		}
		_ = enc.Encode(sets)
		return
	}

	report, err := saved.ReconcileAll(ctx)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}
	_ = enc.Encode(report)
	if report.UsersFailed > 0 {
		os.Exit(1)
	}
}
