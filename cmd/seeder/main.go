package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"skillsync/internal/config"
	dbpostgres "skillsync/internal/database/postgres"
	"skillsync/internal/database/migration"
	"skillsync/internal/database/seeder"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/pkg/jwt"
	"skillsync/internal/repository"
	"skillsync/internal/usecase"
)

func main() {
	migrate := flag.Bool("migrate", true, "apply embedded migrations")
	seed := flag.Bool("seed", true, "upsert demo profiles")
	tokens := flag.Bool("tokens", false, "print access tokens for demo profiles")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)

	switch {
	case !*migrate && !*seed:
	case cfg.App.ProfileStore == config.StoreMemory:
		logger.Printf("PROFILE_STORE=memory, skipping migrate and seed")
	default:
		if err := runDatabase(cfg, logger, *migrate, *seed); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if *tokens {
		if err := printTokens(cfg); err != nil {
			log.Fatalf("failed to mint tokens: %v", err)
		}
	}
}

func runDatabase(cfg config.Config, logger *log.Logger, migrate, seed bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if migrate {
		if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Printf("migrations applied")
	}

	if !seed {
		return nil
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}).Run(ctx, db); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	// Cached popular skills no longer reflect the seeded data.
	redis := cache.NewRedis(cfg.Redis, logger)
	defer func() {
		_ = redis.Close()
	}()
	uc := usecase.NewMatchingUsecase(repository.NewPostgresProfileRepository(db, 0), redis, usecase.MatchingSettings{}, logger)
	if err := uc.InvalidatePopularSkills(ctx); err != nil {
		logger.Printf("popular skills cache not invalidated | err=%v", err)
	}
	return nil
}

func printTokens(cfg config.Config) error {
	svc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	for _, p := range seeder.DemoProfiles() {
		tok, err := svc.GenerateAccessToken(p.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%s\n", p.ID, p.DisplayName, tok)
	}
	return nil
}
