package routes

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"profile-match/internal/database"
	"profile-match/internal/delivery/http/handler"
	"profile-match/internal/infrastructure/cache"
	"profile-match/internal/repository"
	"profile-match/internal/usecase"
)

type Registry struct {
	health        *handler.HealthHandler
	skills        *handler.SkillHandler
	compatibility *handler.CompatibilityHandler
}

func NewRegistry(db database.DB, redis *cache.Redis, logger *zap.Logger) *Registry {
	skillRepo := repository.NewPostgresSkillRepository(db)
	candidateRepo := repository.NewPostgresCandidateRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)

	catalogUC := usecase.NewCatalogUsecase(skillRepo, redis, logger)
	analyzeUC := usecase.NewAnalyzeUsecase(jobRepo, candidateRepo, skillRepo, redis, logger)

	return &Registry{
		health:        handler.NewHealthHandler(db),
		skills:        handler.NewSkillHandler(catalogUC),
		compatibility: handler.NewCompatibilityHandler(analyzeUC),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	v1 := app.Group("/api").Group("/v1")
	r.skills.RegisterRoutes(v1)
	r.compatibility.RegisterRoutes(v1)
}
