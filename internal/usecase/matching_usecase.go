package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/profile"
	"skillsync/internal/pkg/metrics"

	"github.com/google/uuid"
)

const (
	DefaultOverFetchFactor  = 2
	DefaultUserMatchLimit   = 5
	DefaultSkillsMatchLimit = 10

	popularSkillsKeyPrefix = "skills:popular:"
)

var ErrInvalidArgument = errors.New("invalid argument")

type MatchingUsecase interface {
	FindMatchesForUser(ctx context.Context, requesterID uuid.UUID, opts ...MatchOption) ([]matching.MatchResult, error)
	FindMatchesBySkills(ctx context.Context, skillsOffered, skillsWanted []string, opts ...MatchOption) ([]profile.Profile, error)
	GetPopularSkills(ctx context.Context, limit int) ([]matching.SkillCount, error)
}

type MatchingSettings struct {
	OverFetchFactor    int
	DefaultUserLimit   int
	DefaultSkillsLimit int
	PopularCacheTTL    time.Duration
}

func (s MatchingSettings) withDefaults() MatchingSettings {
	if s.OverFetchFactor < 1 {
		s.OverFetchFactor = DefaultOverFetchFactor
	}
	if s.DefaultUserLimit < 1 {
		s.DefaultUserLimit = DefaultUserMatchLimit
	}
	if s.DefaultSkillsLimit < 1 {
		s.DefaultSkillsLimit = DefaultSkillsMatchLimit
	}
	return s
}

type Matching struct {
	store    profile.Store
	cache    Cache
	settings MatchingSettings
	logger   *log.Logger
}

// NewMatchingUsecase wires the matcher to its profile store. cache and logger may be nil.
func NewMatchingUsecase(store profile.Store, cache Cache, settings MatchingSettings, logger *log.Logger) *Matching {
	return &Matching{
		store:    store,
		cache:    cache,
		settings: settings.withDefaults(),
		logger:   logger,
	}
}

func (u *Matching) FindMatchesForUser(ctx context.Context, requesterID uuid.UUID, opts ...MatchOption) ([]matching.MatchResult, error) {
	started := time.Now()

	limit, err := ResolveLimit(opts, u.settings.DefaultUserLimit)
	if err != nil {
		metrics.ObserveMatch(metrics.VariantProfile, metrics.OutcomeInvalid, started)
		return nil, err
	}
	if limit == 0 {
		metrics.ObserveMatch(metrics.VariantProfile, metrics.OutcomeEmpty, started)
		return []matching.MatchResult{}, nil
	}

	requester, err := u.store.GetProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			// matching is advisory; an unknown requester just has no matches
			u.logf("[Matching] requester not found, returning no matches | requester_id=%s", requesterID)
			metrics.ObserveMatch(metrics.VariantProfile, metrics.OutcomeEmpty, started)
			return []matching.MatchResult{}, nil
		}
		metrics.ObserveMatch(metrics.VariantProfile, metrics.OutcomeError, started)
		return nil, err
	}

	filter := profile.CandidateFilter{
		OfferedAny: requester.SkillsWanted,
		WantedAny:  requester.SkillsOffered,
		ExcludeID:  requester.ID,
	}
	pool, err := u.store.FindCandidates(ctx, filter, poolSize(limit, u.settings.OverFetchFactor))
	if err != nil {
		metrics.ObserveMatch(metrics.VariantProfile, metrics.OutcomeError, started)
		return nil, err
	}
	metrics.CandidatePoolSize.Observe(float64(len(pool)))

	pool = excludeProfile(pool, requester.ID)
	ranked := matching.Rank(matching.ScoreAll(requester, pool), limit)

	metrics.ObserveMatch(metrics.VariantProfile, outcomeFor(len(ranked)), started)
	return ranked, nil
}

func (u *Matching) FindMatchesBySkills(ctx context.Context, skillsOffered, skillsWanted []string, opts ...MatchOption) ([]profile.Profile, error) {
	started := time.Now()

	offered := profile.NormalizeSkills(skillsOffered)
	wanted := profile.NormalizeSkills(skillsWanted)
	if len(offered) == 0 && len(wanted) == 0 {
		metrics.ObserveMatch(metrics.VariantSkills, metrics.OutcomeInvalid, started)
		return nil, fmt.Errorf("%w: skills offered and skills wanted are both empty", ErrInvalidArgument)
	}

	limit, err := ResolveLimit(opts, u.settings.DefaultSkillsLimit)
	if err != nil {
		metrics.ObserveMatch(metrics.VariantSkills, metrics.OutcomeInvalid, started)
		return nil, err
	}
	if limit == 0 {
		metrics.ObserveMatch(metrics.VariantSkills, metrics.OutcomeEmpty, started)
		return []profile.Profile{}, nil
	}

	filter := profile.CandidateFilter{
		OfferedAny: wanted,
		WantedAny:  offered,
		Order:      profile.OrderRatingDesc,
	}
	pool, err := u.store.FindCandidates(ctx, filter, limit)
	if err != nil {
		metrics.ObserveMatch(metrics.VariantSkills, metrics.OutcomeError, started)
		return nil, err
	}
	metrics.CandidatePoolSize.Observe(float64(len(pool)))

	out := matching.RankByRating(pool, limit)
	metrics.ObserveMatch(metrics.VariantSkills, outcomeFor(len(out)), started)
	return out, nil
}

func (u *Matching) GetPopularSkills(ctx context.Context, limit int) ([]matching.SkillCount, error) {
	started := time.Now()

	if limit <= 0 {
		metrics.ObserveMatch(metrics.VariantPopular, metrics.OutcomeEmpty, started)
		return []matching.SkillCount{}, nil
	}

	key := PopularSkillsCacheKey(limit)
	if u.cache != nil {
		var cached []matching.SkillCount
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logf("[Matching] popular skills cache read failed | key=%s err=%v", key, err)
		}
		if hit && err == nil {
			metrics.PopularSkillsCache.WithLabelValues("hit").Inc()
			metrics.ObserveMatch(metrics.VariantPopular, outcomeFor(len(cached)), started)
			return cached, nil
		}
		metrics.PopularSkillsCache.WithLabelValues("miss").Inc()
	}

	sets, err := u.store.FindAllProfilesSkills(ctx)
	if err != nil {
		metrics.ObserveMatch(metrics.VariantPopular, metrics.OutcomeError, started)
		return nil, err
	}

	out := matching.PopularSkills(sets, limit)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.settings.PopularCacheTTL); err != nil {
			u.logf("[Matching] popular skills cache write failed | key=%s err=%v", key, err)
		}
	}

	metrics.ObserveMatch(metrics.VariantPopular, outcomeFor(len(out)), started)
	return out, nil
}

// InvalidatePopularSkills drops every cached popular-skills list. Call it after
// profiles change in bulk.
func (u *Matching) InvalidatePopularSkills(ctx context.Context) error {
	if u.cache == nil {
		return nil
	}
	return u.cache.DeleteByPattern(ctx, popularSkillsKeyPrefix+"*")
}

func PopularSkillsCacheKey(limit int) string {
	return popularSkillsKeyPrefix + strconv.Itoa(limit)
}

// poolSize is limit × factor, saturating at math.MaxInt instead of wrapping.
func poolSize(limit, factor int) int {
	if limit > math.MaxInt/factor {
		return math.MaxInt
	}
	return limit * factor
}

func excludeProfile(pool []profile.Profile, id uuid.UUID) []profile.Profile {
	out := pool[:0:0]
	for _, p := range pool {
		if p.ID == id {
			continue
		}
		out = append(out, p)
	}
	return out
}

func outcomeFor(n int) string {
	if n == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}

func (u *Matching) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
