package handler

import (
	"strconv"
	"strings"

	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseSkillsQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// limitOptions turns ?limit= into use case options. An absent limit leaves the
// use case default in place; larger limits are clamped to maxLimit.
func limitOptions(c fiber.Ctx, maxLimit int) ([]usecase.MatchOption, error) {
	if strings.TrimSpace(c.Query("limit")) == "" {
		return nil, nil
	}
	v, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	return []usecase.MatchOption{usecase.WithLimit(clampLimit(v, maxLimit))}, nil
}

func clampLimit(v, maxLimit int) int {
	if maxLimit > 0 && v > maxLimit {
		return maxLimit
	}
	return v
}
