package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"profile-match/internal/delivery/http/dto"
	"profile-match/internal/delivery/http/middleware"
	"profile-match/internal/pkg/response"
	"profile-match/internal/pkg/validation"
	"profile-match/internal/usecase"
)

type SkillHandler struct {
	uc usecase.CatalogUsecase
}

func NewSkillHandler(uc usecase.CatalogUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/skills")
	grp.Post("/resolve", h.Resolve)
	grp.Post("/resolve-batch", h.ResolveBatch)
	grp.Get("/suggest", h.Suggest)
	grp.Post("/consolidate", h.Consolidate)
}

func (h *SkillHandler) Resolve(c fiber.Ctx) error {
	var req dto.ResolveSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "name is required", nil, err)
	}

	item, err := h.uc.Resolve(c.Context(), req.Name)
	if err != nil {
		return mapCatalogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(item))
}

func (h *SkillHandler) ResolveBatch(c fiber.Ctx) error {
	var req dto.ResolveBatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "names must be a non-empty list of non-empty strings", nil, err)
	}

	items, err := h.uc.ResolveBatch(c.Context(), req.Names)
	if err != nil {
		return mapCatalogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillListResponse(items))
}

func (h *SkillHandler) Suggest(c fiber.Ctx) error {
	q := c.Query("q")
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.uc.Suggest(c.Context(), q, limit)
	if err != nil {
		return mapCatalogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillListResponse(items))
}

func (h *SkillHandler) Consolidate(c fiber.Ctx) error {
	merged, err := h.uc.Consolidate(c.Context())
	if err != nil {
		return mapCatalogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ConsolidateResponse{MergedCount: merged})
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
