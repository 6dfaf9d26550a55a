package app

import (
	"github.com/yungbote/image-qc-backend/internal/http/handlers"
	"github.com/yungbote/image-qc-backend/internal/logger"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Images *handlers.ImagesHandler
	Role   *handlers.RoleHandler
	QC     *handlers.QCHandler
}

func wireHandlers(serviceset Services, log *logger.Logger, cfg Config) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(),
		Images: handlers.NewImagesHandler(serviceset.Images, serviceset.Filters),
		Role:   handlers.NewRoleHandler(serviceset.Roles),
		QC:     handlers.NewQCHandler(serviceset.Review, serviceset.Roles, cfg.RequireReviewerRole),
	}
}
