package seeder

import (
	"context"
	"fmt"

	"skillsync/internal/database"
	"skillsync/internal/domain/profile"
)

// ProfilesSeeder upserts a fixed set of profiles by id, so running it again
// refreshes them instead of duplicating.
type ProfilesSeeder struct {
	Profiles []profile.Profile
}

func (ProfilesSeeder) Name() string { return "profiles" }

func (s ProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "profiles", "id", "display_name", "skills_offered", "skills_wanted", "rating", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, p := range s.Profiles {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO profiles (id, display_name, skills_offered, skills_wanted, rating)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
			   display_name = EXCLUDED.display_name,
			   skills_offered = EXCLUDED.skills_offered,
			   skills_wanted = EXCLUDED.skills_wanted,
			   rating = EXCLUDED.rating`,
			p.ID,
			p.DisplayName,
			profile.NormalizeSkills(p.SkillsOffered),
			profile.NormalizeSkills(p.SkillsWanted),
			profile.ClampRating(p.Rating),
		)
		if err != nil {
			return fmt.Errorf("upsert profile %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
