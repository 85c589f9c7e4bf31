package dto

import (
	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	DisplayName   string    `json:"display_name"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
	Rating        float64   `json:"rating"`
}

type MatchResultResponse struct {
	Candidate      ProfileResponse `json:"candidate"`
	Score          int             `json:"score"`
	OfferedOverlap []string        `json:"offered_overlap"`
	WantedOverlap  []string        `json:"wanted_overlap"`
	Mutual         bool            `json:"mutual"`
}

type SkillCountResponse struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type SearchMatchesRequest struct {
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
	Limit         *int     `json:"limit"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		SkillsOffered: nonNil(p.SkillsOffered),
		SkillsWanted:  nonNil(p.SkillsWanted),
		Rating:        p.Rating,
	}
}

func NewProfileResponses(ps []profile.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProfileResponse(p))
	}
	return out
}

func NewMatchResultResponses(rs []matching.MatchResult) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, MatchResultResponse{
			Candidate:      NewProfileResponse(r.Candidate),
			Score:          r.Score,
			OfferedOverlap: nonNil(r.OfferedOverlap),
			WantedOverlap:  nonNil(r.WantedOverlap),
			Mutual:         r.Mutual,
		})
	}
	return out
}

func NewSkillCountResponses(cs []matching.SkillCount) []SkillCountResponse {
	out := make([]SkillCountResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, SkillCountResponse{Skill: c.Skill, Count: c.Count})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
