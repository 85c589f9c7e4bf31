package repository

import (
	"context"
	"errors"
	"testing"

	"skillsync/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProfileRepository_GetProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProfileRepository()

	saved, err := repo.Upsert(ctx, profile.Profile{
		DisplayName:   "ana",
		SkillsOffered: []string{" Go ", "Go", ""},
		SkillsWanted:  []string{"Piano"},
		Rating:        7,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, []string{"Go"}, saved.SkillsOffered)
	assert.Equal(t, 5.0, saved.Rating)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := repo.GetProfile(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = repo.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestMemoryProfileRepository_FindCandidates(t *testing.T) {
	ctx := context.Background()
	self := profile.Profile{ID: uuid.New(), SkillsOffered: []string{"Go"}, SkillsWanted: []string{"Art"}}
	tutor := profile.Profile{ID: uuid.New(), SkillsOffered: []string{"Art"}, Rating: 2}
	learner := profile.Profile{ID: uuid.New(), SkillsWanted: []string{"Go"}, Rating: 4}
	unrelated := profile.Profile{ID: uuid.New(), SkillsOffered: []string{"Chess"}, SkillsWanted: []string{"Yoga"}, Rating: 5}

	repo := NewMemoryProfileRepository(self, tutor, learner, unrelated)

	filter := profile.CandidateFilter{
		OfferedAny: self.SkillsWanted,
		WantedAny:  self.SkillsOffered,
		ExcludeID:  self.ID,
	}

	got, err := repo.FindCandidates(ctx, filter, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tutor.ID, learner.ID}, idsOf(got))

	filter.Order = profile.OrderRatingDesc
	got, err = repo.FindCandidates(ctx, filter, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{learner.ID, tutor.ID}, idsOf(got))

	got, err = repo.FindCandidates(ctx, filter, 1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{learner.ID}, idsOf(got))

	got, err = repo.FindCandidates(ctx, filter, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.FindCandidates(ctx, profile.CandidateFilter{}, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryProfileRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	p := profile.Profile{ID: uuid.New(), SkillsOffered: []string{"Go"}}
	repo := NewMemoryProfileRepository(p)

	got, err := repo.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	got.SkillsOffered[0] = "mutated"

	again, err := repo.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, again.SkillsOffered)
}

func TestMemoryProfileRepository_FindAllProfilesSkills(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProfileRepository(
		profile.Profile{SkillsOffered: []string{"A", "B"}, SkillsWanted: []string{"A"}},
		profile.Profile{SkillsOffered: []string{"A"}, SkillsWanted: []string{"C"}},
	)

	sets, err := repo.FindAllProfilesSkills(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, []string{"A", "B"}, sets[0].SkillsOffered)
	assert.Equal(t, []string{"C"}, sets[1].SkillsWanted)
}

func TestMemoryProfileRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryProfileRepository()
	_, err := repo.FindCandidates(ctx, profile.CandidateFilter{OfferedAny: []string{"Go"}}, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrStoreUnavailable))
	assert.True(t, errors.Is(err, context.Canceled))
}

func idsOf(ps []profile.Profile) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
