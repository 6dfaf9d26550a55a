package app

import (
	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/services"
)

type Services struct {
	Review  services.ReviewService
	Images  services.ImageService
	Filters services.FilterService
	Roles   services.RoleService
}

func wireServices(clients Clients, reposet Repos, log *logger.Logger) Services {
	log.Info("Wiring services...")
	return Services{
		Review:  services.NewReviewService(reposet.State, log),
		Images:  services.NewImageService(reposet.Catalog, reposet.State, log),
		Filters: services.NewFilterService(reposet.Catalog, clients.FilterCache, log),
		Roles:   services.NewRoleService(reposet.Reviewer, log),
	}
}
