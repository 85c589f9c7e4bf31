package seeder

import (
	"time"

	"skillsync/internal/domain/profile"

	"github.com/google/uuid"
)

var demoCreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// DemoProfiles returns the development data set. Ids are fixed so the same
// profiles can be addressed across runs and stores.
func DemoProfiles() []profile.Profile {
	mk := func(id, name string, offered, wanted []string, rating float64) profile.Profile {
		return profile.Profile{
			ID:            uuid.MustParse(id),
			DisplayName:   name,
			SkillsOffered: offered,
			SkillsWanted:  wanted,
			Rating:        rating,
			CreatedAt:     demoCreatedAt,
		}
	}

	return []profile.Profile{
		mk("00000000-0000-4000-8000-000000000001", "Ayu", []string{"Go", "PostgreSQL"}, []string{"Spanish", "Guitar"}, 4.8),
		mk("00000000-0000-4000-8000-000000000002", "Bima", []string{"Spanish", "Cooking"}, []string{"Go"}, 4.2),
		mk("00000000-0000-4000-8000-000000000003", "Citra", []string{"Guitar", "Photography"}, []string{"PostgreSQL", "Docker"}, 3.9),
		mk("00000000-0000-4000-8000-000000000004", "Dewi", []string{"Docker", "Kubernetes"}, []string{"Photography"}, 4.5),
		mk("00000000-0000-4000-8000-000000000005", "Eko", []string{"TypeScript", "React"}, []string{"Go", "Kubernetes"}, 3.1),
		mk("00000000-0000-4000-8000-000000000006", "Fajar", []string{"Cooking"}, []string{"TypeScript", "Spanish"}, 2.7),
		mk("00000000-0000-4000-8000-000000000007", "Gita", []string{"Go", "Redis"}, []string{"React"}, 5.0),
		mk("00000000-0000-4000-8000-000000000008", "Hadi", []string{}, []string{"Guitar"}, 0),
	}
}
