package matching

import (
	"sort"

	"skillsync/internal/domain/profile"
)

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// PopularSkills counts every occurrence of a skill across offered and wanted
// lists. Lists are not de-duplicated, so a skill both offered and wanted by the
// same profile counts twice. Ties keep first-encounter order.
func PopularSkills(sets []profile.SkillSet, n int) []SkillCount {
	if n <= 0 {
		return []SkillCount{}
	}

	index := make(map[string]int)
	counts := make([]SkillCount, 0)
	add := func(skill string) {
		if i, ok := index[skill]; ok {
			counts[i].Count++
			return
		}
		index[skill] = len(counts)
		counts = append(counts, SkillCount{Skill: skill, Count: 1})
	}

	for _, s := range sets {
		for _, sk := range s.SkillsOffered {
			add(sk)
		}
		for _, sk := range s.SkillsWanted {
			add(sk)
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
