package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"skillsync/internal/config"
	"skillsync/internal/database"
	dbpostgres "skillsync/internal/database/postgres"
	"skillsync/internal/database/seeder"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/messaging"
	"skillsync/internal/pkg/jwt"
	"skillsync/internal/repository"
	"skillsync/internal/usecase"
	"skillsync/internal/ws"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Profiles repository.ProfileRepository
	Cache    *cache.Redis
	NATS     *messaging.NATSClient
	JWT      *jwt.HMACService
	Matching *usecase.Matching
	Hub      *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.App.ProfileStore {
	case config.StoreMemory:
		demo := seeder.DemoProfiles()
		c.Profiles = repository.NewMemoryProfileRepository(demo...)
		logger.Printf("[store] using in-memory profiles | count=%d", len(demo))
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Profiles = repository.NewPostgresProfileRepository(db, cfg.Matching.PopularSkillsSample)
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	c.Matching = usecase.NewMatchingUsecase(c.Profiles, c.Cache, usecase.MatchingSettings{
		OverFetchFactor:    cfg.Matching.OverFetchFactor,
		DefaultUserLimit:   cfg.Matching.DefaultUserLimit,
		DefaultSkillsLimit: cfg.Matching.DefaultSkillsLimit,
		PopularCacheTTL:    cfg.Matching.PopularSkillsCacheTTL,
	}, logger)

	c.Hub = ws.NewHub(logger)
	if cfg.NATS.Enabled() {
		nc, err := messaging.NewNATSClient(cfg.NATS, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.NATS = nc

		relay := messaging.NewRoomRelay(nc)
		if err := relay.Listen(c.Hub.Deliver); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("chat relay: %w", err)
		}
		c.Hub.SetRelay(relay)
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.NATS != nil {
		c.NATS.Close()
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
