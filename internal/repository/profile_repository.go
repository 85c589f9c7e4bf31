package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillsync/internal/database"
	"skillsync/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, display_name, skills_offered, skills_wanted, rating::float8, created_at`

type ProfileRepository interface {
	profile.Store
	Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB

	// skillsSample caps FindAllProfilesSkills; zero scans everything.
	skillsSample int
}

func NewPostgresProfileRepository(db database.DB, skillsSample int) *PostgresProfileRepository {
	if skillsSample < 0 {
		skillsSample = 0
	}
	return &PostgresProfileRepository{db: db, skillsSample: skillsSample}
}

func (r *PostgresProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 WHERE id = $1`,
		id,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, storeErr(err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) FindCandidates(ctx context.Context, filter profile.CandidateFilter, maxResults int) ([]profile.Profile, error) {
	if maxResults <= 0 || filter.Empty() {
		return []profile.Profile{}, nil
	}

	var exclude *uuid.UUID
	if filter.ExcludeID != uuid.Nil {
		id := filter.ExcludeID
		exclude = &id
	}

	offered := filter.OfferedAny
	if offered == nil {
		offered = []string{}
	}
	wanted := filter.WantedAny
	if wanted == nil {
		wanted = []string{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 WHERE ($1::uuid IS NULL OR id <> $1::uuid)
		   AND (skills_offered && $2::text[] OR skills_wanted && $3::text[])
		 ORDER BY `+orderClause(filter.Order)+`
		 LIMIT $4`,
		exclude, offered, wanted, maxResults,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (r *PostgresProfileRepository) FindAllProfilesSkills(ctx context.Context) ([]profile.SkillSet, error) {
	query := `SELECT skills_offered, skills_wanted FROM profiles ORDER BY created_at ASC, id ASC`
	args := []any{}
	if r.skillsSample > 0 {
		query += ` LIMIT $1`
		args = append(args, r.skillsSample)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	out := make([]profile.SkillSet, 0)
	for rows.Next() {
		var s profile.SkillSet
		if err := rows.Scan(&s.SkillsOffered, &s.SkillsWanted); err != nil {
			return nil, storeErr(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.SkillsOffered = profile.NormalizeSkills(p.SkillsOffered)
	p.SkillsWanted = profile.NormalizeSkills(p.SkillsWanted)
	p.Rating = profile.ClampRating(p.Rating)

	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, display_name, skills_offered, skills_wanted, rating)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET display_name = EXCLUDED.display_name,
		     skills_offered = EXCLUDED.skills_offered,
		     skills_wanted = EXCLUDED.skills_wanted,
		     rating = EXCLUDED.rating
		 RETURNING `+profileColumns,
		p.ID, p.DisplayName, p.SkillsOffered, p.SkillsWanted, p.Rating,
	)

	saved, err := scanProfile(row)
	if err != nil {
		return profile.Profile{}, storeErr(err)
	}
	return saved, nil
}

func orderClause(o profile.CandidateOrder) string {
	switch o {
	case profile.OrderRatingDesc:
		return `rating DESC, created_at ASC, id ASC`
	default:
		return `created_at ASC, id ASC`
	}
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	if err := row.Scan(&p.ID, &p.DisplayName, &p.SkillsOffered, &p.SkillsWanted, &p.Rating, &p.CreatedAt); err != nil {
		return profile.Profile{}, err
	}
	if p.SkillsOffered == nil {
		p.SkillsOffered = []string{}
	}
	if p.SkillsWanted == nil {
		p.SkillsWanted = []string{}
	}
	return p, nil
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, profile.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", profile.ErrStoreUnavailable, err)
}
