package matching

import (
	"math"

	"skillsync/internal/domain/profile"
)

const (
	MaxScore    = 100
	MutualBonus = 20

	// ratingWeight turns a 0..5 rating into a 0..10 bonus.
	ratingWeight = 2.0
)

type MatchResult struct {
	Candidate      profile.Profile
	Score          int
	OfferedOverlap []string
	WantedOverlap  []string
	Mutual         bool
}

// Score rates candidate against requester. OfferedOverlap is what the candidate
// can teach the requester, WantedOverlap is what the requester can teach back.
func Score(requester, candidate profile.Profile) MatchResult {
	reqOffered := toSet(requester.SkillsOffered)
	reqWanted := toSet(requester.SkillsWanted)

	offeredOverlap := intersect(candidate.SkillsOffered, reqWanted)
	wantedOverlap := intersect(candidate.SkillsWanted, reqOffered)
	mutual := len(offeredOverlap) > 0 && len(wantedOverlap) > 0

	maxPossible := maxInt(len(reqWanted), len(reqOffered), 1)
	base := int(math.Round(100 * float64(len(offeredOverlap)+len(wantedOverlap)) / float64(maxPossible)))

	bonus := 0
	if mutual {
		bonus = MutualBonus
	}
	ratingBonus := int(math.Round(ratingWeight * profile.ClampRating(candidate.Rating)))

	return MatchResult{
		Candidate:      candidate,
		Score:          clampInt(base+bonus+ratingBonus, 0, MaxScore),
		OfferedOverlap: offeredOverlap,
		WantedOverlap:  wantedOverlap,
		Mutual:         mutual,
	}
}

// ScoreAll scores every candidate in pool order.
func ScoreAll(requester profile.Profile, pool []profile.Profile) []MatchResult {
	out := make([]MatchResult, 0, len(pool))
	for _, c := range pool {
		out = append(out, Score(requester, c))
	}
	return out
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// intersect returns the distinct members of skills found in set, in skills order.
func intersect(skills []string, set map[string]struct{}) []string {
	out := make([]string, 0)
	if len(set) == 0 {
		return out
	}
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if _, ok := set[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
