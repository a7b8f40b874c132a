package main

import (
	"context"
	"ctchen222/ShareBnB/internal/api/repository"
	"ctchen222/ShareBnB/internal/auth"
	"ctchen222/ShareBnB/internal/config"
	"ctchen222/ShareBnB/internal/db"
	"ctchen222/ShareBnB/internal/logger"
	"ctchen222/ShareBnB/internal/seed"
	"flag"
	"log"
)

func main() {
	reset := flag.Bool("reset", true, "drop every table before seeding")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	DB, dialect, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer DB.Close()

	if *reset {
		if err := db.Reset(ctx, DB); err != nil {
			log.Fatalf("failed to reset database: %v", err)
		}
	}
	if err := db.Migrate(ctx, DB, dialect); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	seeder := seed.NewSeeder(
		repository.NewUserRepository(DB),
		repository.NewListingRepository(DB, dialect),
		repository.NewMessageRepository(DB),
		auth.NewPasswordHasher(cfg.BcryptCost),
	)
	if err := seeder.Run(ctx); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
}
