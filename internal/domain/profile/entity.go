package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

type Profile struct {
	ID            uuid.UUID
	DisplayName   string
	SkillsOffered []string
	SkillsWanted  []string
	Rating        float64
	CreatedAt     time.Time
}

// SkillSet is the projection the popular-skills aggregation reads.
type SkillSet struct {
	SkillsOffered []string
	SkillsWanted  []string
}

func (p Profile) SkillSet() SkillSet {
	return SkillSet{SkillsOffered: p.SkillsOffered, SkillsWanted: p.SkillsWanted}
}

// NormalizeSkills trims names, drops blanks and duplicates, keeping first-seen order.
// Case is preserved: "Go" and "go" are different skills.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func ClampRating(r float64) float64 {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}
