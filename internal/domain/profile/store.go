package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("profile not found")
	ErrStoreUnavailable = errors.New("profile store unavailable")
)

type CandidateOrder int

const (
	// OrderStore keeps whatever order the store yields, which is stable per store.
	OrderStore CandidateOrder = iota
	OrderRatingDesc
)

// CandidateFilter selects profiles whose offered skills intersect OfferedAny
// OR whose wanted skills intersect WantedAny.
type CandidateFilter struct {
	OfferedAny []string
	WantedAny  []string
	ExcludeID  uuid.UUID
	Order      CandidateOrder
}

func (f CandidateFilter) Empty() bool {
	return len(f.OfferedAny) == 0 && len(f.WantedAny) == 0
}

// Matches reports whether p satisfies the filter, ignoring ordering.
func (f CandidateFilter) Matches(p Profile) bool {
	if f.ExcludeID != uuid.Nil && p.ID == f.ExcludeID {
		return false
	}
	return intersects(p.SkillsOffered, f.OfferedAny) || intersects(p.SkillsWanted, f.WantedAny)
}

type Store interface {
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	FindCandidates(ctx context.Context, filter CandidateFilter, maxResults int) ([]Profile, error)
	FindAllProfilesSkills(ctx context.Context) ([]SkillSet, error)
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
