package handler

import (
	"errors"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/profile"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc       usecase.MatchingUsecase
	maxLimit int
}

func NewMatchHandler(uc usecase.MatchingUsecase, maxLimit int) *MatchHandler {
	return &MatchHandler{uc: uc, maxLimit: maxLimit}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Get("/", h.GetMatches)
	grp.Post("/search", h.SearchMatches)

	r.Get("/profiles/:profile_id/matches", h.GetProfileMatches)
}

// RegisterMeRoutes mounts routes that act on the token's user. r must already
// require authentication.
func (h *MatchHandler) RegisterMeRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches", h.GetMyMatches)
}

func (h *MatchHandler) GetMyMatches(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	opts, err := limitOptions(c, h.maxLimit)
	if err != nil {
		return err
	}

	res, err := h.uc.FindMatchesForUser(c.Context(), userID, opts...)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(res))
}

// GetMatches serves scored matches for the authenticated user, or a rating
// ordered skill search (?offered=a,b&wanted=c) for anonymous callers.
func (h *MatchHandler) GetMatches(c fiber.Ctx) error {
	opts, err := limitOptions(c, h.maxLimit)
	if err != nil {
		return err
	}

	if userID, ok := middleware.UserID(c); ok {
		res, err := h.uc.FindMatchesForUser(c.Context(), userID, opts...)
		if err != nil {
			return mapMatchingUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(res))
	}

	offered := parseSkillsQuery(c.Query("offered"))
	wanted := parseSkillsQuery(c.Query("wanted"))
	res, err := h.uc.FindMatchesBySkills(c.Context(), offered, wanted, opts...)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponses(res))
}

func (h *MatchHandler) SearchMatches(c fiber.Ctx) error {
	var req dto.SearchMatchesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var opts []usecase.MatchOption
	if req.Limit != nil {
		opts = append(opts, usecase.WithLimit(clampLimit(*req.Limit, h.maxLimit)))
	}

	res, err := h.uc.FindMatchesBySkills(c.Context(), req.SkillsOffered, req.SkillsWanted, opts...)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponses(res))
}

func (h *MatchHandler) GetProfileMatches(c fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("profile_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	opts, err := limitOptions(c, h.maxLimit)
	if err != nil {
		return err
	}

	res, err := h.uc.FindMatchesForUser(c.Context(), profileID, opts...)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(res))
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidArgument):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, profile.ErrStoreUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
