package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"profile-match/internal/delivery/http/dto"
	"profile-match/internal/delivery/http/middleware"
	"profile-match/internal/pkg/response"
	"profile-match/internal/usecase"
)

type CompatibilityHandler struct {
	uc usecase.AnalyzeUsecase
}

func NewCompatibilityHandler(uc usecase.AnalyzeUsecase) *CompatibilityHandler {
	return &CompatibilityHandler{uc: uc}
}

func (h *CompatibilityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/candidates")
	grp.Get("/:candidate_id/compatibility/:job_posting_id", h.GetCompatibility)
}

func (h *CompatibilityHandler) GetCompatibility(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid candidate id", nil, err)
	}
	postingID, err := uuid.Parse(c.Params("job_posting_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid job posting id", nil, err)
	}

	report, err := h.uc.Analyze(c.Context(), candidateID, postingID)
	if err != nil {
		return mapAnalyzeError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompatibilityReportResponse(report))
}

func mapAnalyzeError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrJobPostingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "job posting not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "candidate not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
