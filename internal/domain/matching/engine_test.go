package matching

import (
	"testing"

	"skillsync/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfile(offered, wanted []string, rating float64) profile.Profile {
	return profile.Profile{ID: uuid.New(), SkillsOffered: offered, SkillsWanted: wanted, Rating: rating}
}

func TestScore_MutualBonusIsClipped(t *testing.T) {
	requester := newProfile([]string{"React"}, []string{"Python"}, 0)
	candidate := newProfile([]string{"Python"}, []string{"React"}, 4.0)

	res := Score(requester, candidate)

	assert.Equal(t, []string{"Python"}, res.OfferedOverlap)
	assert.Equal(t, []string{"React"}, res.WantedOverlap)
	assert.True(t, res.Mutual)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, candidate.ID, res.Candidate.ID)
}

func TestScore_PartialOverlap(t *testing.T) {
	requester := newProfile([]string{"Go", "SQL"}, []string{"Guitar", "Spanish", "Chess", "Yoga"}, 0)
	candidate := newProfile([]string{"Spanish", "Cooking"}, []string{"Painting"}, 3.3)

	res := Score(requester, candidate)

	// base = round(100*1/4) = 25, no mutual bonus, rating bonus = round(6.6) = 7
	assert.Equal(t, 32, res.Score)
	assert.False(t, res.Mutual)
	assert.Equal(t, []string{"Spanish"}, res.OfferedOverlap)
	assert.Empty(t, res.WantedOverlap)
}

func TestScore_EmptyRequesterScoresOnlyRating(t *testing.T) {
	requester := newProfile(nil, nil, 0)

	for _, rating := range []float64{0, 1.2, 2.5, 4.9, 5} {
		candidate := newProfile([]string{"Go"}, []string{"Rust"}, rating)
		res := Score(requester, candidate)

		assert.Empty(t, res.OfferedOverlap)
		assert.Empty(t, res.WantedOverlap)
		assert.False(t, res.Mutual)
		assert.Equal(t, int(roundHalfUp(2*rating)), res.Score)
	}
}

func TestScore_DuplicatesAreSets(t *testing.T) {
	requester := newProfile([]string{"Go", "Go"}, []string{"Jazz", "Jazz", "Jazz"}, 0)
	candidate := newProfile([]string{"Jazz", "Jazz"}, nil, 0)

	res := Score(requester, candidate)

	// maxPossible = max(1, 1, 1) so a single distinct overlap is already 100
	assert.Equal(t, []string{"Jazz"}, res.OfferedOverlap)
	assert.Equal(t, 100, res.Score)
}

func TestScore_CaseSensitive(t *testing.T) {
	requester := newProfile(nil, []string{"python"}, 0)
	candidate := newProfile([]string{"Python"}, nil, 0)

	res := Score(requester, candidate)
	assert.Empty(t, res.OfferedOverlap)
	assert.Equal(t, 0, res.Score)
}

func TestScore_OverlappingOfferedAndWanted(t *testing.T) {
	requester := newProfile([]string{"Chess"}, []string{"Chess"}, 0)
	candidate := newProfile([]string{"Chess"}, []string{"Chess"}, 0)

	res := Score(requester, candidate)
	assert.True(t, res.Mutual)
	assert.Equal(t, 100, res.Score)
}

func TestScore_Bounds(t *testing.T) {
	skills := [][]string{
		nil,
		{"A"},
		{"A", "B"},
		{"B", "C", "D"},
		{"A", "B", "C", "D", "E", "F"},
	}
	ratings := []float64{-3, 0, 2.5, 5, 11}

	for _, ro := range skills {
		for _, rw := range skills {
			for _, co := range skills {
				for _, cw := range skills {
					for _, r := range ratings {
						res := Score(newProfile(ro, rw, 0), newProfile(co, cw, r))
						require.GreaterOrEqual(t, res.Score, 0)
						require.LessOrEqual(t, res.Score, 100)
					}
				}
			}
		}
	}
}

func TestScore_SymmetricOverlapsGiveEqualScores(t *testing.T) {
	a := newProfile([]string{"Go", "Docker"}, []string{"Piano", "French"}, 1.5)
	b := newProfile([]string{"Piano", "French"}, []string{"Go", "Docker"}, 1.5)

	ab := Score(a, b)
	ba := Score(b, a)

	assert.ElementsMatch(t, b.SkillsOffered, ab.OfferedOverlap)
	assert.ElementsMatch(t, b.SkillsWanted, ab.WantedOverlap)
	assert.ElementsMatch(t, a.SkillsOffered, ba.OfferedOverlap)
	assert.ElementsMatch(t, a.SkillsWanted, ba.WantedOverlap)
	assert.True(t, ab.Mutual)
	assert.True(t, ba.Mutual)
	assert.Equal(t, ab.Score, ba.Score)
}

func TestScore_AsymmetryComesFromRatingAndMaxPossible(t *testing.T) {
	a := newProfile([]string{"Go"}, []string{"Piano"}, 0)
	b := newProfile([]string{"Piano", "Drums", "Bass"}, []string{"Go", "Rust", "C"}, 0)

	ab := Score(a, b)
	ba := Score(b, a)

	// a's sets have size 1, b's have size 3, so the same two overlaps weigh differently
	assert.True(t, ab.Mutual)
	assert.True(t, ba.Mutual)
	assert.Equal(t, 100, ab.Score)
	assert.Equal(t, 87, ba.Score) // round(200/3)=67 + 20
}

func TestScoreAll_KeepsPoolOrder(t *testing.T) {
	requester := newProfile([]string{"Go"}, []string{"Art"}, 0)
	pool := []profile.Profile{
		newProfile([]string{"Art"}, nil, 0),
		newProfile(nil, []string{"Go"}, 5),
	}

	res := ScoreAll(requester, pool)
	require.Len(t, res, 2)
	assert.Equal(t, pool[0].ID, res[0].Candidate.ID)
	assert.Equal(t, pool[1].ID, res[1].Candidate.ID)
}

func roundHalfUp(v float64) float64 {
	return float64(int(v + 0.5))
}
