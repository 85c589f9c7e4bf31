package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skillsync/internal/database"
)

var ErrNilDB = errors.New("seeder: nil db")

// Seeder loads one kind of fixture data. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner applies Seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return ErrNilDB
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		started := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[seeder] done | name=%s took=%s", s.Name(), time.Since(started))
		}
	}
	return nil
}
