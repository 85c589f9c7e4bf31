package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"skillsync/internal/domain/profile"

	"github.com/google/uuid"
)

// MemoryProfileRepository keeps profiles in insertion order. It backs local
// runs with PROFILE_STORE=memory and the use case tests.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	profiles map[uuid.UUID]profile.Profile
	now      func() time.Time
}

func NewMemoryProfileRepository(seed ...profile.Profile) *MemoryProfileRepository {
	r := &MemoryProfileRepository{
		profiles: make(map[uuid.UUID]profile.Profile),
		now:      time.Now,
	}
	for _, p := range seed {
		_, _ = r.Upsert(context.Background(), p)
	}
	return r
}

func (r *MemoryProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, storeErr(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *MemoryProfileRepository) FindCandidates(ctx context.Context, filter profile.CandidateFilter, maxResults int) ([]profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(err)
	}
	if maxResults <= 0 || filter.Empty() {
		return []profile.Profile{}, nil
	}

	r.mu.RLock()
	matched := make([]profile.Profile, 0)
	for _, id := range r.order {
		p := r.profiles[id]
		if filter.Matches(p) {
			matched = append(matched, cloneProfile(p))
		}
	}
	r.mu.RUnlock()

	if filter.Order == profile.OrderRatingDesc {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Rating > matched[j].Rating
		})
	}

	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}
	return matched, nil
}

func (r *MemoryProfileRepository) FindAllProfilesSkills(ctx context.Context) ([]profile.SkillSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.SkillSet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneProfile(r.profiles[id]).SkillSet())
	}
	return out, nil
}

func (r *MemoryProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, storeErr(err)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.SkillsOffered = profile.NormalizeSkills(p.SkillsOffered)
	p.SkillsWanted = profile.NormalizeSkills(p.SkillsWanted)
	p.Rating = profile.ClampRating(p.Rating)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = r.now().UTC()
		}
		r.order = append(r.order, p.ID)
	}
	r.profiles[p.ID] = p
	return cloneProfile(p), nil
}

func cloneProfile(p profile.Profile) profile.Profile {
	p.SkillsOffered = append([]string{}, p.SkillsOffered...)
	p.SkillsWanted = append([]string{}, p.SkillsWanted...)
	return p
}
