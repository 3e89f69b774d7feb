// Command seed populates the development database with a demo network mesh.
package main

import (
	"flag"
	"log"

	"weave/internal/cache"
	"weave/internal/config"
	"weave/internal/database"
	"weave/internal/middleware"
	"weave/internal/repository"
	"weave/internal/seed"
	"weave/internal/service"
)

func main() {
	numUsers := flag.Int("users", 40, "number of users to seed")
	clean := flag.Bool("clean", false, "delete existing network data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.InitMiddleware(cfg)
	cache.InitRedis(cfg.RedisURL)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	svc := service.NewNetworkService(
		repository.NewUserRepository(db),
		repository.NewConnectionRepository(db),
		repository.NewFollowRepository(db),
		repository.NewInvitationRepository(db),
	)

	if err := seed.Run(db, svc, seed.Options{
		NumUsers:    *numUsers,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
