package matching

import (
	"sort"

	"skillsync/internal/domain/profile"
)

// Rank sorts results by score, highest first, keeping pool order among equal
// scores, and keeps at most limit entries. A limit of zero or less yields an
// empty, non-nil slice.
func Rank(results []MatchResult, limit int) []MatchResult {
	if limit <= 0 || len(results) == 0 {
		return []MatchResult{}
	}

	ranked := make([]MatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankByRating is the explicit-skills ordering: rating descending, stable, truncated.
func RankByRating(profiles []profile.Profile, limit int) []profile.Profile {
	if limit <= 0 || len(profiles) == 0 {
		return []profile.Profile{}
	}

	ranked := make([]profile.Profile, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
