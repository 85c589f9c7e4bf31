package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc           usecase.MatchingUsecase
	defaultLimit int
	maxLimit     int
}

func NewSkillHandler(uc usecase.MatchingUsecase, defaultLimit, maxLimit int) *SkillHandler {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	return &SkillHandler{uc: uc, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/popular", h.Popular)
}

func (h *SkillHandler) Popular(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", h.defaultLimit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}

	items, err := h.uc.GetPopularSkills(c.Context(), clampLimit(limit, h.maxLimit))
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillCountResponses(items))
}
