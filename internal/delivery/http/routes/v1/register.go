package v1

import (
	"skillsync/internal/delivery/http/handler"
	"skillsync/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth  *middleware.AuthMiddleware
	Match *handler.MatchHandler
	Skill *handler.SkillHandler
}

// Register mounts the v1 API. Routes under /me require a bearer token; every
// other route accepts anonymous callers and uses the token, when present, to
// identify the requester.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		RegisterMe(r.Group("/me", h.Auth.Middleware()), h.Match)
	}

	grp := r
	if h.Auth != nil {
		grp = r.Group("", h.Auth.Optional())
	}

	RegisterMatches(grp, h.Match)
	RegisterSkills(grp, h.Skill)
}
