package handler

import (
	"github.com/gofiber/fiber/v3"

	"profile-match/internal/database"
	"profile-match/internal/pkg/response"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := fiber.Map{"database": "ok"}
	if h.db == nil {
		status["database"] = "not configured"
	} else if err := h.db.Ping(c.Context()); err != nil {
		status["database"] = "unreachable"
		return response.Error(c, fiber.StatusServiceUnavailable, "degraded", status)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
