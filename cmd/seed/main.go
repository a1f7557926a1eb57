// Command main runs the database seeder for CampusHub.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"campushub/internal/auth"
	"campushub/internal/bootstrap"
	"campushub/internal/config"
	"campushub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	saves := flag.Int("saves", 3, "Saved posts per user")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding (SQL drivers only)")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SkipRedis: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = rt.Close(context.Background()) }()

	if *shouldClean {
		if rt.DB == nil {
			log.Fatalf("-clean is not supported for driver %q", rt.Store.Driver())
		}
		if err := seed.ClearSQL(ctx, rt.DB); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	summary, err := seed.Seed(ctx, rt.Users, rt.Posts, auth.NewBcryptHasher(cfg.BcryptCost), seed.Options{
		NumUsers:     *numUsers,
		NumPosts:     *numPosts,
		SavesPerUser: *saves,
		RandSeed:     *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, %d saved references", summary.Users, summary.Posts, summary.Saved)
	log.Printf("All test users have the password: %s", seed.DefaultPassword)
}
