package seeder

import (
	"context"
	"errors"
	"testing"

	"skillsync/internal/database"
	"skillsync/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDB struct {
	database.DB
}

type namedSeeder struct {
	name string
	err  error
	ran  *[]string
}

func (s namedSeeder) Name() string { return s.name }

func (s namedSeeder) Run(ctx context.Context, db database.DB) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

func TestRunner_NilDB(t *testing.T) {
	err := Runner{Seeders: Defaults()}.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilDB)
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("boom")

	err := Runner{Seeders: []Seeder{
		namedSeeder{name: "a", ran: &ran},
		nil,
		namedSeeder{name: "b", err: boom, ran: &ran},
		namedSeeder{name: "c", ran: &ran},
	}}.Run(context.Background(), stubDB{})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed b")
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestDemoProfiles(t *testing.T) {
	ps := DemoProfiles()
	require.NotEmpty(t, ps)

	seen := map[uuid.UUID]bool{}
	for _, p := range ps {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true

		assert.Equal(t, profile.NormalizeSkills(p.SkillsOffered), p.SkillsOffered)
		assert.Equal(t, profile.NormalizeSkills(p.SkillsWanted), p.SkillsWanted)
		assert.Equal(t, profile.ClampRating(p.Rating), p.Rating)
	}

	again := DemoProfiles()
	assert.Equal(t, ps[0].ID, again[0].ID)
}
