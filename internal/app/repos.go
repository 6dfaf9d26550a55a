package app

import (
	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/repos"
)

type Repos struct {
	Catalog  repos.CatalogRepo
	State    repos.ReviewStateRepo
	Reviewer repos.ReviewerRepo
}

func wireRepos(clients Clients, log *logger.Logger, cfg Config) Repos {
	log.Info("Wiring repos...")

	r := Repos{
		Catalog: repos.NewCatalogRepo(clients.BigQuery, log, clients.BigQuery.Project(), cfg.BQDataset, cfg.CatalogTable),
	}
	// Firestore-backed repos exist only in writable mode; nil repos put the
	// services into their degraded paths.
	if clients.Firestore != nil {
		r.State = repos.NewReviewStateRepo(clients.Firestore, log)
		r.Reviewer = repos.NewReviewerRepo(clients.Firestore, log)
	}
	return r
}
